package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailHandler fetches resume attachments from a hiring inbox
type GmailHandler struct {
	service    *gmail.Service
	uploadsDir string
	logger     *zap.Logger
}

// GmailConfig locates the OAuth credential material on disk.
type GmailConfig struct {
	CredentialsFile string
	TokenFile       string
}

// NewGmailHandler creates a Gmail handler using a previously authorized
// token. Run Authorize first to obtain one interactively.
func NewGmailHandler(ctx context.Context, cfg GmailConfig, uploadsDir string, logger *zap.Logger) (*GmailHandler, error) {
	oauthCfg, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("no cached gmail token (run authorization first): %w", err)
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailHandler{
		service:    srv,
		uploadsDir: uploadsDir,
		logger:     logger,
	}, nil
}

// Authorize walks the OAuth device flow on the terminal and caches the
// resulting token next to the credentials.
func Authorize(ctx context.Context, cfg GmailConfig) error {
	oauthCfg, err := oauthConfig(cfg)
	if err != nil {
		return err
	}

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := oauthCfg.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web: %w", err)
	}

	return saveToken(cfg.TokenFile, tok)
}

func oauthConfig(cfg GmailConfig) (*oauth2.Config, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	return oauthCfg, nil
}

// tokenFromFile retrieves a cached token
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// saveToken caches a token to disk
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// FetchAttachments downloads resume attachments from messages matching the
// subject filter into the uploads directory and returns the saved paths.
func (gh *GmailHandler) FetchAttachments(ctx context.Context, subject string) ([]string, error) {
	if err := os.MkdirAll(gh.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	user := "me"
	q := fmt.Sprintf("subject:%s has:attachment", subject)

	list, err := gh.service.Users.Messages.List(user).Q(q).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %w", err)
	}
	if len(list.Messages) == 0 {
		return nil, fmt.Errorf("no messages found with subject: %s", subject)
	}

	var saved []string
	for _, msg := range list.Messages {
		message, err := gh.service.Users.Messages.Get(user, msg.Id).Context(ctx).Do()
		if err != nil {
			gh.logger.Warn("unable to retrieve message",
				zap.String("message_id", msg.Id),
				zap.Error(err),
			)
			continue
		}

		for _, part := range message.Payload.Parts {
			if part.Filename == "" || part.Body.AttachmentId == "" {
				continue
			}
			if !SupportedExtension(part.Filename) {
				gh.logger.Debug("skipping unsupported attachment",
					zap.String("filename", part.Filename),
				)
				continue
			}

			attachment, err := gh.service.Users.Messages.Attachments.Get(user, msg.Id, part.Body.AttachmentId).Context(ctx).Do()
			if err != nil {
				gh.logger.Warn("unable to retrieve attachment",
					zap.String("filename", part.Filename),
					zap.Error(err),
				)
				continue
			}

			data, err := base64.URLEncoding.DecodeString(attachment.Data)
			if err != nil {
				gh.logger.Warn("unable to decode attachment",
					zap.String("filename", part.Filename),
					zap.Error(err),
				)
				continue
			}

			path := filepath.Join(gh.uploadsDir, filepath.Base(part.Filename))
			if err := os.WriteFile(path, data, 0644); err != nil {
				gh.logger.Warn("unable to write attachment",
					zap.String("path", path),
					zap.Error(err),
				)
				continue
			}

			gh.logger.Info("downloaded resume attachment", zap.String("path", path))
			saved = append(saved, path)
		}
	}

	return saved, nil
}
