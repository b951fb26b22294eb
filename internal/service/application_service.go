package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"intwork/internal/models"
	"intwork/internal/repository"
)

const (
	pdfMIME       = "application/pdf"
	pdfDataPrefix = "data:application/pdf;base64,"

	// StatusAll disables the status filter of the applications page.
	StatusAll = "ALL"
)

type ApplicationInput struct {
	JobPostID   int64
	FullName    string
	Email       string
	Phone       string
	CoverLetter string
	CVFileName  string
	CV          []byte
}

type ApplicationsPage struct {
	Jobs          []models.Post
	SelectedJobID int64
	SelectedJob   *models.Post
	Status        string
	Applications  []models.Application
	// Counts holds the number of applications per status before filtering.
	Counts map[models.ApplicationStatus]int
	Total  int
}

type CVFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ApplicationService interface {
	Submit(ctx context.Context, input ApplicationInput) error
	Page(ctx context.Context, jobID int64, status string) (*ApplicationsPage, error)
	Mine(ctx context.Context) ([]models.Application, error)
	UpdateStatus(ctx context.Context, applicationID int64, status string) error
	Delete(ctx context.Context, applicationID int64) error
	CV(ctx context.Context, jobID, applicationID int64) (*CVFile, error)
}

type applicationService struct {
	applicationRepo repository.ApplicationRepository
	postRepo        repository.PostRepository
	maxCVSize       int64
}

func NewApplicationService(
	applicationRepo repository.ApplicationRepository,
	postRepo repository.PostRepository,
	maxCVSize int64,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		postRepo:        postRepo,
		maxCVSize:       maxCVSize,
	}
}

// Submit checks the required fields and that the CV really is a PDF, then
// sends it inline as a base64 data URL.
func (s *applicationService) Submit(ctx context.Context, input ApplicationInput) error {
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" || len(input.CV) == 0 {
		return ErrCVRequired
	}
	if s.maxCVSize > 0 && int64(len(input.CV)) > s.maxCVSize {
		return ErrCVTooLarge
	}
	if !mimetype.Detect(input.CV).Is(pdfMIME) {
		return ErrNotPDF
	}

	return s.applicationRepo.Submit(ctx, models.ApplicationRequest{
		FullName:    strings.TrimSpace(input.FullName),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		CoverLetter: strings.TrimSpace(input.CoverLetter),
		CVBase64:    pdfDataPrefix + base64.StdEncoding.EncodeToString(input.CV),
		CVFileName:  input.CVFileName,
		JobPostID:   input.JobPostID,
	})
}

// Page lists the applications of one job. Without a job id the first job is selected.
func (s *applicationService) Page(ctx context.Context, jobID int64, status string) (*ApplicationsPage, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == "" || !models.ApplicationStatus(status).Valid() {
		status = StatusAll
	}

	page := &ApplicationsPage{Status: status, Counts: map[models.ApplicationStatus]int{}}

	var applications []models.Application
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		jobs, err := s.postRepo.GetJobs(gctx)
		page.Jobs = jobs
		return err
	})
	if jobID != 0 {
		g.Go(func() error {
			var err error
			applications, err = s.applicationRepo.GetByJobID(gctx, jobID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if jobID == 0 {
		if len(page.Jobs) == 0 {
			return page, nil
		}
		jobID = page.Jobs[0].ID
		var err error
		applications, err = s.applicationRepo.GetByJobID(ctx, jobID)
		if err != nil {
			return nil, err
		}
	}

	page.SelectedJobID = jobID
	for i := range page.Jobs {
		if page.Jobs[i].ID == jobID {
			page.SelectedJob = &page.Jobs[i]
			break
		}
	}

	page.Total = len(applications)
	page.Applications = make([]models.Application, 0, len(applications))
	for _, app := range applications {
		page.Counts[app.Status]++
		if status == StatusAll || string(app.Status) == status {
			page.Applications = append(page.Applications, app)
		}
	}
	return page, nil
}

func (s *applicationService) Mine(ctx context.Context) ([]models.Application, error) {
	return s.applicationRepo.GetMine(ctx)
}

// UpdateStatus allows any status to follow any other; only the value itself is checked.
func (s *applicationService) UpdateStatus(ctx context.Context, applicationID int64, status string) error {
	next := models.ApplicationStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !next.Valid() {
		return ErrInvalidStatus
	}
	return s.applicationRepo.UpdateStatus(ctx, applicationID, next)
}

func (s *applicationService) Delete(ctx context.Context, applicationID int64) error {
	return s.applicationRepo.Delete(ctx, applicationID)
}

func (s *applicationService) CV(ctx context.Context, jobID, applicationID int64) (*CVFile, error) {
	applications, err := s.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	for _, app := range applications {
		if app.ID != applicationID {
			continue
		}
		if app.CVBase64 == "" {
			return nil, ErrCVMissing
		}
		data, err := decodeDataURL(app.CVBase64)
		if err != nil {
			return nil, fmt.Errorf("error decoding CV of application %d: %w", applicationID, err)
		}

		// Only PDFs are served; anything else was not uploaded through this site.
		if !mimetype.Detect(data).Is(pdfMIME) {
			return nil, ErrCVUnsafe
		}

		name := app.CVFileName
		if name == "" {
			name = fmt.Sprintf("CV_%s.pdf", app.FullName)
		}
		return &CVFile{
			FileName:    name,
			ContentType: pdfMIME,
			Data:        data,
		}, nil
	}

	return nil, ErrCVMissing
}

// decodeDataURL accepts a data URL or a bare base64 payload.
func decodeDataURL(value string) ([]byte, error) {
	payload := value
	if strings.HasPrefix(value, "data:") {
		_, after, found := strings.Cut(value, ",")
		if !found {
			return nil, fmt.Errorf("data url has no payload")
		}
		payload = after
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
}
