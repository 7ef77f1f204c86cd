package supabase

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Storage calls use the service-role key. End-user tokens never reach the
// storage API; handlers gate access before calling these methods.

// UploadObject stores raw bytes under bucket/path.
func (c *Client) UploadObject(bucket, path string, data []byte, contentType string) *Failure {
	req, err := http.NewRequest(http.MethodPost, c.storageURL+"/object/"+bucket+"/"+path, bytes.NewReader(data))
	if err != nil {
		return transportFailure(err)
	}
	c.serviceHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	_, failure := c.do(req)
	return failure
}

// DeleteObject removes the object at bucket/path.
func (c *Client) DeleteObject(bucket, path string) *Failure {
	req, err := http.NewRequest(http.MethodDelete, c.storageURL+"/object/"+bucket+"/"+path, nil)
	if err != nil {
		return transportFailure(err)
	}
	c.serviceHeaders(req)
	_, failure := c.do(req)
	return failure
}

// ListObjects lists objects in a bucket under the given prefix.
func (c *Client) ListObjects(bucket, prefix string) (json.RawMessage, *Failure) {
	payload, err := json.Marshal(map[string]string{"prefix": prefix})
	if err != nil {
		return nil, transportFailure(err)
	}

	req, err := http.NewRequest(http.MethodPost, c.storageURL+"/object/list/"+bucket, bytes.NewReader(payload))
	if err != nil {
		return nil, transportFailure(err)
	}
	c.serviceHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// PublicURL builds the public URL for an object. No network call is made;
// the bucket must be configured for public read. Signed URLs with expiry
// are not supported.
func (c *Client) PublicURL(bucket, path string) string {
	return c.storageURL + "/object/public/" + bucket + "/" + path
}
