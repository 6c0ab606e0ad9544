package emailer

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/raffler-space/backend/config"
)

const charset = "UTF-8"

type sesEmailer struct {
	client *ses.SES
	cfg    config.EmailConfigs
}

func NewSESEmailer(cfg config.EmailConfigs) Emailer {
	session, _ := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})

	return &sesEmailer{
		client: ses.New(session),
		cfg:    cfg,
	}
}

func (e *sesEmailer) Send(ctx context.Context, to, subject, body string) error {
	_, err := e.client.SendEmailWithContext(ctx, &ses.SendEmailInput{
		Source: aws.String(e.cfg.Sender),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(to)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Charset: aws.String(charset),
				Data:    aws.String(subject),
			},
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String(charset),
					Data:    aws.String(body),
				},
			},
		},
	})

	return err
}
