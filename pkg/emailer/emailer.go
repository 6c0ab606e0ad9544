package emailer

import "context"

type Emailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
