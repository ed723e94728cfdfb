package backendsvc

import "github.com/trezcool/registrar/core/student"

// backend answers are {"detail": "...", "payload": {...}}
type (
	generalResponse struct {
		Detail string `json:"detail"`
	}

	filtersResponse struct {
		Payload student.Filters `json:"payload"`
	}

	pageResponse struct {
		Payload student.Page `json:"payload"`
	}

	viewResponse struct {
		Payload student.View `json:"payload"`
	}

	historyResponse struct {
		Payload student.History `json:"payload"`
	}

	dataResponse struct {
		Payload student.Data `json:"payload"`
	}
)
