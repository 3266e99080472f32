// Package dto holds HTTP request and response shapes.
package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine readable code and a message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeTeamFull         = "TEAM_FULL"
	ErrCodeOnAnotherTeam    = "ON_ANOTHER_TEAM"
	ErrCodeLeaderLeave      = "LEADER_CANNOT_LEAVE"
	ErrCodePermissionDenied = "PERMISSION_DENIED"
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternal         = "INTERNAL"
)
