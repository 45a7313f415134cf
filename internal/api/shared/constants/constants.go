package constants

import "github.com/feral-file/ff-marketplace/internal/api/shared/types"

const (
	MAX_PAGE_SIZE          = 100
	MAX_CONTENT_REF_LENGTH = 2048
	DEFAULT_OFFSET         = 0
	DEFAULT_ASSETS_LIMIT   = 20
	DEFAULT_HISTORY_LIMIT  = 20
	DEFAULT_HISTORY_ORDER  = types.OrderAsc
)
