package instance

import "context"

const StatusFound = "instância encontrada"

type FindRequest struct {
	Instance string `json:"instance" params:"instance"`
	APIKey   string `json:"-"`
}

type FindResponse struct {
	Status string `json:"status"`
}

type IInstanceUsecase interface {
	Find(ctx context.Context, request FindRequest) (FindResponse, error)
}
