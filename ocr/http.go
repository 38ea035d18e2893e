package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Sends image as multipart `file` together with extra form fields and decodes JSON response into `response`.
// Transport failures are wrapped with ErrNetwork.
func postImage(ctx context.Context, client *http.Client, url string, image []byte, fields map[string]string, response any) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	imagePart, err := writer.CreateFormFile("file", "data")
	if err != nil {
		return errors.Join(errors.New("failed to prepare multipart form data: failed to prepare image for sending as file"), err)
	}
	if _, err := imagePart.Write(image); err != nil {
		return errors.Join(errors.New("failed to prepare multipart form data: failed to write image to multipart"), err)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return errors.Join(fmt.Errorf("failed to prepare multipart form data: failed to write field [%s]", name), err)
		}
	}
	if err := writer.Close(); err != nil {
		return errors.Join(errors.New("failed to prepare multipart form data: failed to finalize writer"), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return errors.Join(errors.New("failed to prepare HTTP request"), err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return errors.Join(ErrNetwork, errors.New("HTTP request to external server failed"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from external sever: status code %d", resp.StatusCode)
	}

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrNetwork, errors.New("error while reading response body from remote server"), err)
	}
	if err := json.Unmarshal(responseBytes, response); err != nil {
		return errors.Join(errors.New("failed to unmarshall response from remote server"), err)
	}

	return nil
}
