package dto

type CoverLetterRequest struct {
	ResumeId       string `json:"resume_id" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

type InterviewRequest struct {
	ResumeId string `json:"resume_id" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type InterviewResponse struct {
	Questions string `json:"questions"`
}
