package lerror

import "net/http"

type LCode int

const (
	InvalidData        LCode = 4000
	InvalidAmount      LCode = 4001
	MissingParams      LCode = 4002
	UnsupportedChain   LCode = 4003
	WalletDisconnected LCode = 4100
	PriceUnavailable   LCode = 4400
	QuoteFailed        LCode = 5020
	CalldataFailed     LCode = 5021
	InternalServer     LCode = 5000
)

var errorMap = map[LCode]*XError{
	InvalidData: {
		Status:  http.StatusBadRequest,
		Message: "Invalid data",
	},
	InvalidAmount: {
		Status:  http.StatusBadRequest,
		Message: "Invalid amount",
	},
	MissingParams: {
		Status:  http.StatusBadRequest,
		Message: "Missing required parameters",
	},
	UnsupportedChain: {
		Status:  http.StatusBadRequest,
		Message: "Unsupported chain",
	},
	WalletDisconnected: {
		Status:  http.StatusUnauthorized,
		Message: "Wallet is not connected",
	},
	PriceUnavailable: {
		Status:  http.StatusNotFound,
		Message: "Price unavailable",
	},
	QuoteFailed: {
		Status:  http.StatusBadGateway,
		Message: "Quote request failed",
	},
	CalldataFailed: {
		Status:  http.StatusBadGateway,
		Message: "Calldata request failed",
	},
	InternalServer: {
		Status:  http.StatusInternalServerError,
		Message: "Internal Server",
	},
}

func (c LCode) ToInt() int {
	return int(c)
}

// ToError builds a new XError for the code, an optional message
// replaces the default one
func (c LCode) ToError(message ...string) *XError {
	r, ok := errorMap[c]
	if !ok {
		r = errorMap[InternalServer]
	}
	err := &XError{
		Status:  r.Status,
		Code:    c.ToInt(),
		Message: r.Message,
	}
	if len(message) != 0 {
		err.Message = message[0]
	}
	return err
}

// WithStatus is ToError with the upstream HTTP status kept instead of the default
func (c LCode) WithStatus(status int, message string) *XError {
	err := c.ToError(message)
	err.Status = status
	return err
}
