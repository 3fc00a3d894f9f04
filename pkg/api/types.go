package api

import (
	"github.com/open-teleop/pathscript/pkg/request"
	"github.com/open-teleop/pathscript/services"
)

// --- Data Structures for the script API ---

// BatchRequest carries several script requests processed on the worker pool.
type BatchRequest struct {
	Requests []request.ScriptRequestDTO `json:"requests"`
}

// BatchItem is the outcome of one request of a batch, in request order.
type BatchItem struct {
	Index  int                       `json:"index"`
	Script *services.GeneratedScript `json:"script,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

// BatchResponse summarizes a processed batch.
type BatchResponse struct {
	Results   []BatchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}
