package api

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"roulette/models"
	"roulette/service"
)

// statusFor maps the domain error taxonomy onto HTTP statuses: validation
// 400, state conflicts 409, solvency rejections 422, authorization 403,
// missing resources 404, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrPoolHalted),
		errors.Is(err, service.ErrRoundNotStarted),
		errors.Is(err, service.ErrRoundFinished):
		return http.StatusConflict
	}

	var (
		invalidSelection *models.InvalidSelectionError
		betLimit         *service.BetLimitError
		betPoints        *service.ExceedBetPointsError
		fundsMismatch    *service.FundsMismatchError
		notFound         *service.RoomNotFoundError
		duplicate        *service.DuplicateWagerError
		notFinished      *service.RoundNotFinishedError
		coverage         *service.InsufficientPoolCoverageError
		withdrawal       *service.WithdrawalExceedsAvailableError
		insufficientFund *service.InsufficientFundsError
		unauthorized     *service.UnauthorizedError
	)
	switch {
	case errors.As(err, &invalidSelection),
		errors.As(err, &betLimit),
		errors.As(err, &betPoints),
		errors.As(err, &fundsMismatch):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate), errors.As(err, &notFinished):
		return http.StatusConflict
	case errors.As(err, &coverage),
		errors.As(err, &withdrawal),
		errors.As(err, &insufficientFund):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"path":      r.URL.Path,
			"requestId": requestIDFrom(r),
		}).WithError(err).Error("request failed")
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
