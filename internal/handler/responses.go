package handler

import (
	"time"

	"github.com/suraj371k/Job-Portal/internal/model"
)

// employerProfileResponse は企業プロフィールのAPIレスポンス。
type employerProfileResponse struct {
	ID           string            `json:"id"`
	AccountID    string            `json:"accountId"`
	CompanyName  string            `json:"companyName"`
	CompanyLogo  string            `json:"companyLogo,omitempty"`
	Industry     string            `json:"industry,omitempty"`
	CompanySize  string            `json:"companySize,omitempty"`
	Location     string            `json:"location,omitempty"`
	Founded      *int              `json:"founded,omitempty"`
	Description  string            `json:"description,omitempty"`
	SocialLinks  model.SocialLinks `json:"socialLinks"`
	ContactEmail string            `json:"contactEmail,omitempty"`
	ContactPhone string            `json:"contactPhone,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// toEmployerProfileResponse はnilをnilのまま返し、GETのdata:null契約を保つ。
func toEmployerProfileResponse(p *model.EmployerProfile) *employerProfileResponse {
	if p == nil {
		return nil
	}
	return &employerProfileResponse{
		ID:           p.ID,
		AccountID:    p.AccountID,
		CompanyName:  p.CompanyName,
		CompanyLogo:  p.CompanyLogo,
		Industry:     p.Industry,
		CompanySize:  p.CompanySize,
		Location:     p.Location,
		Founded:      p.Founded,
		Description:  p.Description,
		SocialLinks:  p.SocialLinks,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// employerSummaryResponse は求人一覧に埋め込む企業情報のAPIレスポンス。
type employerSummaryResponse struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	CompanySize string `json:"companySize,omitempty"`
}

// jobResponse は求人のAPIレスポンス。
type jobResponse struct {
	ID          string    `json:"id"`
	EmployerID  string    `json:"employerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Salary      string    `json:"salary,omitempty"`
	Skills      string    `json:"skills,omitempty"`
	JobType     string    `json:"jobType"`
	Vacancies   int       `json:"vacancies"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toJobResponse(j *model.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		EmployerID:  j.EmployerID,
		Title:       j.Title,
		Description: j.Description,
		Salary:      j.Salary,
		Skills:      j.Skills,
		JobType:     string(j.JobType),
		Vacancies:   j.Vacancies,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// jobWithEmployerResponse は求人に掲載企業の抜粋を付けたAPIレスポンス。
type jobWithEmployerResponse struct {
	jobResponse
	Employer employerSummaryResponse `json:"employer"`
}

func toJobWithEmployerResponse(j *model.JobWithEmployer) jobWithEmployerResponse {
	return jobWithEmployerResponse{
		jobResponse: toJobResponse(&j.Job),
		Employer: employerSummaryResponse{
			ID:          j.Employer.ID,
			CompanyName: j.Employer.CompanyName,
			Industry:    j.Employer.Industry,
			Location:    j.Employer.Location,
			CompanySize: j.Employer.CompanySize,
		},
	}
}

func toJobWithEmployerResponses(jobs []model.JobWithEmployer) []jobWithEmployerResponse {
	out := make([]jobWithEmployerResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobWithEmployerResponse(&jobs[i]))
	}
	return out
}

// candidateApplicationResponse は候補者向け応募一覧のAPIレスポンス。
type candidateApplicationResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"appliedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Job       struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Salary      string    `json:"salary,omitempty"`
		PostedAt    time.Time `json:"postedAt"`
		CompanyName string    `json:"companyName"`
		Location    string    `json:"location,omitempty"`
	} `json:"job"`
}

func toCandidateApplicationResponses(apps []model.ApplicationForCandidate) []candidateApplicationResponse {
	out := make([]candidateApplicationResponse, 0, len(apps))
	for _, a := range apps {
		resp := candidateApplicationResponse{
			ID:        a.ID,
			Status:    string(a.Status),
			AppliedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		}
		resp.Job.ID = a.JobID
		resp.Job.Title = a.JobTitle
		resp.Job.Salary = a.Salary
		resp.Job.PostedAt = a.PostedAt
		resp.Job.CompanyName = a.CompanyName
		resp.Job.Location = a.Location
		out = append(out, resp)
	}
	return out
}

// employerApplicationResponse は企業向け応募一覧のAPIレスポンス。
type employerApplicationResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"appliedAt"`
	JobID     string    `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	Candidate struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"candidate"`
}

func toEmployerApplicationResponses(apps []model.ApplicationForEmployer) []employerApplicationResponse {
	out := make([]employerApplicationResponse, 0, len(apps))
	for _, a := range apps {
		resp := employerApplicationResponse{
			ID:        a.ID,
			Status:    string(a.Status),
			AppliedAt: a.CreatedAt,
			JobID:     a.JobID,
			JobTitle:  a.JobTitle,
		}
		resp.Candidate.ID = a.CandidateID
		resp.Candidate.Name = a.CandidateName
		resp.Candidate.Email = a.CandidateEmail
		out = append(out, resp)
	}
	return out
}

// applicationResponse は応募単体のAPIレスポンス。
type applicationResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	CandidateID string    `json:"candidateId"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toApplicationResponse(a *model.Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		CandidateID: a.CandidateID,
		Status:      string(a.Status),
		AppliedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// userProfileResponse は求職者プロフィールのAPIレスポンス。
type userProfileResponse struct {
	ID             string               `json:"id"`
	AccountID      string               `json:"accountId"`
	Title          string               `json:"title,omitempty"`
	Bio            string               `json:"bio,omitempty"`
	Location       string               `json:"location,omitempty"`
	Phone          string               `json:"phone,omitempty"`
	Skills         []string             `json:"skills"`
	Experience     []model.Experience   `json:"experience"`
	Education      []model.Education    `json:"education"`
	ResumeURL      string               `json:"resumeUrl,omitempty"`
	JobPreferences model.JobPreferences `json:"jobPreferences"`
	SocialLinks    model.SocialLinks    `json:"socialLinks"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// toUserProfileResponse はnilをnilのまま返し、GETのdata:null契約を保つ。
func toUserProfileResponse(p *model.UserProfile) *userProfileResponse {
	if p == nil {
		return nil
	}
	return &userProfileResponse{
		ID:             p.ID,
		AccountID:      p.AccountID,
		Title:          p.Title,
		Bio:            p.Bio,
		Location:       p.Location,
		Phone:          p.Phone,
		Skills:         p.Skills,
		Experience:     p.Experience,
		Education:      p.Education,
		ResumeURL:      p.ResumeURL,
		JobPreferences: p.JobPreferences,
		SocialLinks:    p.SocialLinks,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
