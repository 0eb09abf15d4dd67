package browser

import (
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// CaptchaStatus classifies the best-effort captcha wait. It is logged and
// never escalated; a fetch proceeds to read the page regardless.
type CaptchaStatus int

const (
	// CaptchaNotDetected means the endpoint saw no challenge on the page.
	CaptchaNotDetected CaptchaStatus = iota
	// CaptchaResolved means the endpoint solved a detected challenge.
	CaptchaResolved
	// CaptchaWaitFailed covers everything else: solve failure, wait
	// timeout, or an endpoint that does not support the solver command.
	CaptchaWaitFailed
)

// String returns the string representation of the status.
func (s CaptchaStatus) String() string {
	switch s {
	case CaptchaNotDetected:
		return "not_detected"
	case CaptchaResolved:
		return "resolved"
	case CaptchaWaitFailed:
		return "wait_failed"
	default:
		return "unknown"
	}
}

// captchaSolveParams are the parameters for the endpoint's
// Captcha.waitForSolve command. The Captcha domain is vendor-specific and
// not part of cdproto, so the easyjson plumbing is written out by hand.
type captchaSolveParams struct {
	DetectTimeout int64 // milliseconds
}

// MarshalJSON satisfies json.Marshaler.
func (p *captchaSolveParams) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	p.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON satisfies easyjson.Marshaler.
func (p *captchaSolveParams) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"detectTimeout":`)
	w.Int64(p.DetectTimeout)
	w.RawByte('}')
}

// captchaSolveReply is the result of Captcha.waitForSolve.
type captchaSolveReply struct {
	Status string
}

// UnmarshalJSON satisfies json.Unmarshaler.
func (r *captchaSolveReply) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	r.UnmarshalEasyJSON(&l)
	return l.Error()
}

// UnmarshalEasyJSON satisfies easyjson.Unmarshaler.
func (r *captchaSolveReply) UnmarshalEasyJSON(l *jlexer.Lexer) {
	isTopLevel := l.IsStart()
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeFieldName(false)
		l.WantColon()
		if l.IsNull() {
			l.Skip()
			l.WantComma()
			continue
		}
		switch key {
		case "status":
			r.Status = l.String()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
	if isTopLevel {
		l.Consumed()
	}
}

// statusFromReply maps the endpoint's solver statuses onto CaptchaStatus.
func statusFromReply(reply captchaSolveReply) CaptchaStatus {
	switch reply.Status {
	case "solve_finished":
		return CaptchaResolved
	case "not_detected":
		return CaptchaNotDetected
	default:
		return CaptchaWaitFailed
	}
}
