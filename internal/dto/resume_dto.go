package dto

import "github.com/google/uuid"

type UploadResumeResponse struct {
	ResumeId  string `json:"resume_id"`
	SessionId string `json:"session_id"`
	Filename  string `json:"filename"`
	FileSize  int    `json:"file_size"`
	Status    string `json:"status"`
}

type PublishEmbedResumeMessage struct {
	ResumeId uuid.UUID `json:"resume_id"`
}
