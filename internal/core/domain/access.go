package domain

// Principal is the authenticated identity attached to a request by the
// auth middleware.
type Principal struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// The functions below are the single access-control evaluator for the
// portal. Every handler and service routes ownership decisions through
// them; no endpoint compares client ids on its own.

// CanAccessProject reports whether p may read or write the project:
// admins always, clients only their own.
func CanAccessProject(p Principal, project *Project) bool {
	return p.IsAdmin() || project.ClientID == p.UserID
}

// CanAccessFile applies the project ownership rule to the file's parent
// project.
func CanAccessFile(p Principal, project *Project) bool {
	return CanAccessProject(p, project)
}

// CanWriteStatus reports whether p may change project status.
func CanWriteStatus(p Principal) bool {
	return p.IsAdmin()
}

// CanManageInvoices reports whether p may create or update invoices.
func CanManageInvoices(p Principal) bool {
	return p.IsAdmin()
}

// CanUploadType reports whether p may create a file of the given type.
// Deliverables (type download) are admin-only; regular uploads are open
// to any authenticated principal, ownership of the target project is
// checked separately via CanAccessProject.
func CanUploadType(p Principal, t FileType) bool {
	if t == FileTypeDownload {
		return p.IsAdmin()
	}
	return true
}
