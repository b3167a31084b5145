package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// postJSON sends body to url and treats any non-2xx status as a failure.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("%s: status %d: %s", url, resp.StatusCode, bytes.TrimSpace(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
