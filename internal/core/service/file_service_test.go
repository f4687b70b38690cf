package service

import (
	"context"
	"strings"
	"testing"

	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/ports"
)

// memBlobStore keeps blobs in a map, standing in for the disk store.
type memBlobStore struct {
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Write(name string, data []byte) error {
	s.blobs[name] = append([]byte(nil), data...)
	return nil
}

func (s *memBlobStore) Read(name string) ([]byte, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, domain.ErrFileMissing
	}
	return data, nil
}

func newFileServiceForTest() (ports.FileService, *stubProjectRepo, *stubFileRepo, *memBlobStore) {
	projects := newStubProjectRepo()
	files := newStubFileRepo()
	blobs := newMemBlobStore()
	svc := NewFileService(files, projects, blobs, newStubCache(), discardLogger)
	return svc, projects, files, blobs
}

func seedProject(t *testing.T, repo *stubProjectRepo, clientID string) *domain.Project {
	t.Helper()
	project, err := repo.Create(context.Background(), &domain.Project{
		Title:    "seed",
		ClientID: clientID,
		Status:   domain.StatusPending,
	})
	if err != nil {
		t.Fatalf("seed project failed: %v", err)
	}
	return project
}

func TestFileService_Upload_Success(t *testing.T) {
	svc, projects, _, blobs := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	record, err := svc.Upload(context.Background(), ports.UploadInput{
		Principal: clientA,
		ProjectID: project.ID,
		FileName:  "my résumé.pdf",
		Data:      []byte("content"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if record.Name != "my résumé.pdf" {
		t.Fatalf("display name must stay verbatim, got %q", record.Name)
	}
	if record.Path == record.Name {
		t.Fatal("storage name must be generated, not the original name")
	}
	if !strings.HasSuffix(record.Path, ".pdf") {
		t.Fatalf("storage name must keep the extension, got %q", record.Path)
	}
	if record.Type != domain.FileTypeUpload {
		t.Fatalf("absent type must default to upload, got %q", record.Type)
	}
	if _, ok := blobs.blobs[record.Path]; !ok {
		t.Fatal("blob must be stored under the generated name")
	}
}

func TestFileService_Upload_MissingFields(t *testing.T) {
	svc, projects, _, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	for _, in := range []ports.UploadInput{
		{Principal: clientA, ProjectID: "", FileName: "a.txt"},
		{Principal: clientA, ProjectID: project.ID, FileName: ""},
	} {
		if _, err := svc.Upload(context.Background(), in); err != domain.ErrFileRequired {
			t.Fatalf("expected ErrFileRequired for %+v, got %v", in, err)
		}
	}
}

func TestFileService_Upload_InvalidType(t *testing.T) {
	svc, projects, _, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	_, err := svc.Upload(context.Background(), ports.UploadInput{
		Principal: clientA,
		ProjectID: project.ID,
		FileName:  "a.txt",
		FileType:  "attachment",
	})
	if err != domain.ErrInvalidFileType {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
}

func TestFileService_Upload_DeliverableRequiresAdmin(t *testing.T) {
	svc, projects, _, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	_, err := svc.Upload(context.Background(), ports.UploadInput{
		Principal: clientA,
		ProjectID: project.ID,
		FileName:  "final.zip",
		FileType:  "download",
	})
	if err != domain.ErrForbidden {
		t.Fatalf("client creating a deliverable: expected ErrForbidden, got %v", err)
	}

	record, err := svc.Upload(context.Background(), ports.UploadInput{
		Principal: admin,
		ProjectID: project.ID,
		FileName:  "final.zip",
		FileType:  "download",
		Data:      []byte("zip"),
	})
	if err != nil {
		t.Fatalf("admin deliverable upload failed: %v", err)
	}
	if record.Type != domain.FileTypeDownload {
		t.Fatalf("expected download type, got %q", record.Type)
	}
}

func TestFileService_Upload_ForeignProjectLooksAbsent(t *testing.T) {
	svc, projects, _, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	_, err := svc.Upload(context.Background(), ports.UploadInput{
		Principal: clientB,
		ProjectID: project.ID,
		FileName:  "sneaky.txt",
		Data:      []byte("x"),
	})
	if err != domain.ErrProjectNotFound {
		t.Fatalf("foreign project must read as not found, got %v", err)
	}
}

func TestFileService_Upload_AdminIntoAnyProject(t *testing.T) {
	svc, projects, _, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	if _, err := svc.Upload(context.Background(), ports.UploadInput{
		Principal: admin,
		ProjectID: project.ID,
		FileName:  "notes.txt",
		Data:      []byte("x"),
	}); err != nil {
		t.Fatalf("admin upload into client project failed: %v", err)
	}
}

func TestFileService_Download_Owner(t *testing.T) {
	svc, projects, _, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	record, err := svc.Upload(context.Background(), ports.UploadInput{
		Principal: clientA,
		ProjectID: project.ID,
		FileName:  "report.txt",
		Data:      []byte("hello"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	content, err := svc.Download(context.Background(), clientA, record.ID)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if content.Name != "report.txt" || string(content.Data) != "hello" {
		t.Fatalf("unexpected content: %q %q", content.Name, content.Data)
	}
}

func TestFileService_Download_OtherClientForbidden(t *testing.T) {
	svc, projects, _, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	record, _ := svc.Upload(context.Background(), ports.UploadInput{
		Principal: clientA,
		ProjectID: project.ID,
		FileName:  "private.txt",
		Data:      []byte("x"),
	})

	if _, err := svc.Download(context.Background(), clientB, record.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestFileService_Download_UnknownID(t *testing.T) {
	svc, _, _, _ := newFileServiceForTest()

	if _, err := svc.Download(context.Background(), admin, "missing"); err != domain.ErrFileNotFound {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestFileService_Download_MissingBlob(t *testing.T) {
	svc, projects, files, _ := newFileServiceForTest()
	project := seedProject(t, projects, clientA.UserID)

	// Record exists but the blob was never written.
	record, _ := files.Create(context.Background(), &domain.File{
		Name:      "ghost.txt",
		Path:      "gone.txt",
		ProjectID: project.ID,
		Type:      domain.FileTypeUpload,
	})

	if _, err := svc.Download(context.Background(), clientA, record.ID); err != domain.ErrFileMissing {
		t.Fatalf("expected ErrFileMissing, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"report.pdf", "report.pdf"},
		{"my résumé.pdf", "my_r_sum_.pdf"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"a b/c\\d.txt", "a_b_c_d.txt"},
		{"", "file"},
	} {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewStorageName(t *testing.T) {
	a := NewStorageName("photo.JPG")
	b := NewStorageName("photo.JPG")

	if a == b {
		t.Fatal("storage names must be unique per call")
	}
	if !strings.HasSuffix(a, ".JPG") {
		t.Fatalf("storage name must keep the extension, got %q", a)
	}
	if strings.ContainsAny(a, "/\\") {
		t.Fatalf("storage name must not contain separators, got %q", a)
	}

	if ext := NewStorageName("noext"); strings.Contains(ext, ".") {
		t.Fatalf("name without extension must produce none, got %q", ext)
	}
}
