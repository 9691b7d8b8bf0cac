package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vault-warden/internal/app"
	"github.com/MKhiriev/go-vault-warden/internal/service"
	"github.com/MKhiriev/go-vault-warden/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidTarget:           http.StatusBadRequest,
	service.ErrProofRequired:           http.StatusBadRequest,
	service.ErrDelayTooLong:            http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUnauthorized:            http.StatusForbidden,
	service.ErrSignatureInvalid:        http.StatusForbidden,
	service.ErrSignerNotOwner:          http.StatusForbidden,
	service.ErrNotTheVault:             http.StatusForbidden,
	service.ErrCancelNotSupported:      http.StatusMethodNotAllowed,
	service.ErrDelayNotElapsed:         http.StatusConflict,
	service.ErrExecutionFailed:         http.StatusBadGateway,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrDuplicateRequest:  http.StatusConflict,
	store.ErrInvalidTransition: http.StatusConflict,
	store.ErrRequestNotFound:   http.StatusNotFound,
	store.ErrSettingsNotFound:  http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided:     app.MsgInvalidDataProvided,
	service.ErrInvalidTarget:           app.MsgInvalidTarget,
	service.ErrTokenIsExpiredOrInvalid: app.MsgTokenIsExpiredOrInvalid,
	service.ErrUnauthorized:            app.MsgUnauthorized,
	service.ErrSignatureInvalid:        app.MsgSignatureInvalid,
	service.ErrSignerNotOwner:          app.MsgSignerNotOwner,
	service.ErrNotTheVault:             app.MsgNotTheVault,
	service.ErrCancelNotSupported:      app.MsgCancelNotSupported,
	service.ErrDelayNotElapsed:         app.MsgDelayNotElapsed,
	service.ErrDelayTooLong:            app.MsgDelayTooLong,
	service.ErrExecutionFailed:         app.MsgExecutionFailed,

	store.ErrDuplicateRequest:  app.MsgDuplicateRequest,
	store.ErrInvalidTransition: app.MsgAlreadyTerminal,
	store.ErrRequestNotFound:   app.MsgRequestNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError maps domain errors to the stable response wording in
// [app]; unmapped errors fall back to a generic message so that low-level
// detail never leaks to API clients.
func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return app.MsgInternalServerError
}
