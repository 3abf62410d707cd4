package models

import (
	getrowsmodels "io.winapps.vybes/internal/models/get_rows"
)

// OpenSessionResponse has the same shape as a rows read
type OpenSessionResponse = getrowsmodels.GetRowsResponse
