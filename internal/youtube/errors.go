package youtube

import (
	"errors"
	"net/http"
	"strings"

	"github.com/querytube/insight-services/internal/apperr"
	"google.golang.org/api/googleapi"
)

// Client facing messages for classified API failures
const (
	MsgCommentsDisabled = "Comments are disabled for this video."
	MsgQuotaExceeded    = "YouTube API quota exceeded. Please try again later."
	MsgForbidden        = "Access forbidden. Please check your API key permissions."
	MsgVideoNotFound    = "Video not found. Please check the URL."
	MsgAPIErrorPrefix   = "YouTube API Error: "
)

const (
	reasonCommentsDisabled = "commentsDisabled"
	reasonQuotaExceeded    = "quotaExceeded"
)

// Classify maps an error returned by ListComments onto an apperr kind.
// Structured error reasons are checked before the message text.
// Errors that are not API errors are returned as is.
func Classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusForbidden:
		switch {
		case hasReason(gerr, reasonCommentsDisabled):
			return apperr.Wrap(apperr.KindCommentsDisabled, MsgCommentsDisabled, err)
		case hasReason(gerr, reasonQuotaExceeded):
			return apperr.Wrap(apperr.KindQuotaExceeded, MsgQuotaExceeded, err)
		default:
			return apperr.Wrap(apperr.KindForbidden, MsgForbidden, err)
		}
	case http.StatusNotFound:
		return apperr.Wrap(apperr.KindNotFound, MsgVideoNotFound, err)
	default:
		return apperr.Wrap(apperr.KindUpstream, MsgAPIErrorPrefix+gerr.Error(), err)
	}
}

func hasReason(gerr *googleapi.Error, reason string) bool {
	for _, item := range gerr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return strings.Contains(gerr.Message, reason) || strings.Contains(gerr.Body, reason)
}
