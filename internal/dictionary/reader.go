// Package dictionary looks up suggested definitions from WordsAPI on RapidAPI.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"github.com/rodaine/table"
	"github.com/spf13/afero"

	"github.com/at-ishikawa/wordbook/internal/dictionary/rapidapi"
)

var (
	// ErrNotFound is returned when the API has no entry for a word.
	ErrNotFound = errors.New("word not found in dictionary")
	// ErrMissingCredentials is returned when the RapidAPI host or key is not configured.
	ErrMissingCredentials = errors.New("RAPID_API_HOST and RAPID_API_KEY must be set")
)

type Config struct {
	RapidAPIHost  string
	RapidAPIKey   string
	RetryAttempts uint
	// BaseURL overrides https://<RapidAPIHost>.
	BaseURL string
}

type Reader struct {
	config     Config
	httpClient *resty.Client
	fileCache  *FileCache
	retryDelay time.Duration
}

func NewReader(fsys afero.Fs, cacheDirectory string, config Config) *Reader {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://" + config.RapidAPIHost
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-rapidapi-host", config.RapidAPIHost).
		SetHeader("x-rapidapi-key", config.RapidAPIKey).
		SetTimeout(30 * time.Second)

	return &Reader{
		config:     config,
		httpClient: client,
		fileCache:  NewFileCache(fsys, cacheDirectory),
		retryDelay: 500 * time.Millisecond,
	}
}

type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

func isRetryableError(err error) bool {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.statusCode == http.StatusTooManyRequests || statusErr.statusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, ErrNotFound) && !errors.Is(err, context.Canceled)
}

func (r *Reader) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	res, err := r.httpClient.R().
		SetContext(ctx).
		Get("/words/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%q: %w", word, ErrNotFound)
	case res.StatusCode() != http.StatusOK:
		return nil, &statusError{statusCode: res.StatusCode(), body: string(res.Body())}
	}
	return res.Body(), nil
}

// Lookup returns the WordsAPI entry for word, reading the cache first.
func (r *Reader) Lookup(ctx context.Context, word string) (rapidapi.Response, error) {
	var resp rapidapi.Response
	word = strings.TrimSpace(word)
	if word == "" {
		return resp, fmt.Errorf("%q: %w", word, ErrNotFound)
	}

	contents, err := r.fileCache.cache(word, func() ([]byte, error) {
		if r.config.BaseURL == "" && (r.config.RapidAPIHost == "" || r.config.RapidAPIKey == "") {
			return nil, ErrMissingCredentials
		}

		var body []byte
		err := retry.Do(
			func() error {
				b, err := r.lookupAPI(ctx, word)
				if err != nil {
					if !isRetryableError(err) {
						return retry.Unrecoverable(err)
					}
					slog.Debug("retrying dictionary lookup", "word", word, "error", err)
					return err
				}
				body = b
				return nil
			},
			retry.Context(ctx),
			retry.Attempts(r.config.RetryAttempts+1),
			retry.Delay(r.retryDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("r.lookupAPI > %w", err)
		}
		return body, nil
	})
	if err != nil {
		return resp, fmt.Errorf("r.fileCache.cache > %w", err)
	}
	if err := json.Unmarshal(contents, &resp); err != nil {
		return resp, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return resp, nil
}

// Show renders the numbered definitions of response as a table.
// Numbers match the positions in response.Definitions().
func (r *Reader) Show(w io.Writer, response rapidapi.Response) {
	tbl := table.New("#", "Part of speech", "Definition", "Synonyms").WithWriter(w)
	n := 0
	for _, result := range response.Results {
		definition := strings.TrimSpace(result.Definition)
		if definition == "" {
			continue
		}
		n++
		tbl.AddRow(n, result.PartOfSpeech, definition, strings.Join(result.Synonyms, ", "))
	}
	tbl.Print()
}
