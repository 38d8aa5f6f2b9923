package session

import (
	"errors"

	"github.com/huangsam/cvsspop/core/vector"
)

// Notice is a transient message for the user.
type Notice struct {
	Text  string
	Error bool
}

// Notice texts shown by the popup.
const (
	PrefixNoticeText  = "Invalid vector string prefix. Must start with CVSS:3.1/ or CVSS:4.0/"
	ParseNoticeText   = "Error parsing vector string. Ensure proper format."
	CopyNoticeText    = "Cannot copy invalid vector string"
	EditNoticeText    = "Cannot edit an invalid vector string"
	NoVectorText      = "No vector on this tab"
	CopiedNoticeText  = "Copied!"
	UnexpectedNotice  = "Something went wrong"
	ResetNoticeFormat = "%s reset to defaults"
)

// NoticeFor maps an intent error to the message shown to the user.
func NoticeFor(err error) (Notice, bool) {
	switch {
	case err == nil:
		return Notice{}, false
	case errors.Is(err, vector.ErrUnknownPrefix):
		return Notice{Text: PrefixNoticeText, Error: true}, true
	case errors.Is(err, vector.ErrInvalidValue):
		return Notice{Text: ParseNoticeText, Error: true}, true
	case errors.Is(err, ErrCopyInvalid):
		return Notice{Text: CopyNoticeText, Error: true}, true
	case errors.Is(err, ErrEditInvalid):
		return Notice{Text: EditNoticeText, Error: true}, true
	case errors.Is(err, ErrNoVector):
		return Notice{Text: NoVectorText, Error: true}, true
	default:
		return Notice{Text: UnexpectedNotice, Error: true}, true
	}
}
