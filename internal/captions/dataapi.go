package captions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// maxCaptionBytes bounds a single caption download.
const maxCaptionBytes = 8 << 20

// Credential authenticates against the YouTube Data API.
// AccessToken (OAuth bearer) wins over APIKey when both are set;
// captions.download needs the token, captions.list works with either.
type Credential struct {
	APIKey      string
	AccessToken string
}

// googleReasons maps googleapi error reasons onto Reason.
var googleReasons = map[string]Reason{
	"quotaExceeded":      ReasonQuotaExceeded,
	"dailyLimitExceeded": ReasonQuotaExceeded,
	"forbidden":          ReasonForbidden,
	"notFound":           ReasonNotFound,
	"videoNotFound":      ReasonNotFound,
	"captionNotFound":    ReasonNotFound,
}

// DataAPI is the Platform backed by YouTube Data API v3.
type DataAPI struct {
	svc *youtube.Service
}

// NewDataAPI builds a Data API client. Extra options (endpoint, user agent)
// are appended after the credential.
func NewDataAPI(ctx context.Context, cred Credential, opts ...option.ClientOption) (*DataAPI, error) {
	var auth []option.ClientOption
	switch {
	case cred.AccessToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.AccessToken, TokenType: "Bearer"})
		auth = append(auth, option.WithTokenSource(ts))
	case cred.APIKey != "":
		auth = append(auth, option.WithAPIKey(cred.APIKey))
	default:
		return nil, errors.New("youtube data api: no credential")
	}
	svc, err := youtube.NewService(ctx, append(auth, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}
	return &DataAPI{svc: svc}, nil
}

// ListTracks calls captions.list with part=snippet.
func (d *DataAPI) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	resp, err := d.svc.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, platformError(err)
	}
	tracks := make([]Track, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		tracks = append(tracks, Track{
			ID:            item.Id,
			Language:      item.Snippet.Language,
			Name:          item.Snippet.Name,
			AutoGenerated: strings.EqualFold(item.Snippet.TrackKind, "asr"),
		})
	}
	return tracks, nil
}

// Download calls captions.download with tfmt=format.
func (d *DataAPI) Download(ctx context.Context, trackID, format string) ([]byte, error) {
	resp, err := d.svc.Captions.Download(trackID).Tfmt(format).Context(ctx).Download()
	if err != nil {
		return nil, platformError(err)
	}
	defer resp.Body.Close()
	doc, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read caption %s: %w", trackID, err)
	}
	if len(doc) > maxCaptionBytes {
		return nil, fmt.Errorf("caption %s exceeds %d bytes", trackID, maxCaptionBytes)
	}
	return doc, nil
}

// platformError converts a *googleapi.Error into a *PlatformError.
// Other errors are returned unchanged.
func platformError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	pe := &PlatformError{Status: gerr.Code, Message: gerr.Message}
	for _, item := range gerr.Errors {
		if r, ok := googleReasons[item.Reason]; ok {
			pe.Reason = r
			break
		}
	}
	return pe
}
