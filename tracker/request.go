package tracker

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/andyle182810/gtracker/httpclient"
	"github.com/andyle182810/gtracker/resource"
	"github.com/andyle182810/gtracker/xmlcodec"
)

// Fields is the payload of a create or update call. Values may be scalars,
// []string, time.Time, nested Fields or a decoded resource.Value.
type Fields = map[string]any

type queryParam struct {
	key   string
	value string
}

type requestBody interface {
	encode() ([]byte, string, error)
}

// xmlBody is sent as compact XML with its own Content-Type.
type xmlBody struct {
	root   string
	fields Fields
}

func (b xmlBody) encode() ([]byte, string, error) {
	text, err := xmlcodec.Encode(b.root, b.fields)
	if err != nil {
		return nil, "", err
	}

	return []byte(text), httpclient.ContentTypeXML, nil
}

// formBody is sent as root[key][sub]=value form parameters.
type formBody struct {
	root   string
	fields Fields
}

func (b formBody) encode() ([]byte, string, error) {
	values := url.Values{}
	if err := flattenForm(values, b.root, b.fields); err != nil {
		return nil, "", err
	}

	return []byte(values.Encode()), httpclient.ContentTypeFormURLEncoded, nil
}

func flattenForm(values url.Values, prefix string, fields Fields) error {
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if err := flattenFormValue(values, prefix+"["+key+"]", fields[key]); err != nil {
			return err
		}
	}

	return nil
}

func flattenFormValue(values url.Values, name string, value any) error {
	switch val := value.(type) {
	case nil:
		values.Set(name, "")
	case Fields:
		return flattenForm(values, name, val)
	case map[string]string:
		for _, key := range slices.Sorted(maps.Keys(val)) {
			values.Set(name+"["+key+"]", val[key])
		}
	case resource.Value:
		return flattenFormResource(values, name, val)
	default:
		text, ok := xmlcodec.FormatScalar(val)
		if !ok {
			return fmt.Errorf("%w: %s is %T", xmlcodec.ErrUnsupportedValue, name, value)
		}

		values.Set(name, text)
	}

	return nil
}

func flattenFormResource(values url.Values, name string, value resource.Value) error {
	switch value.Kind() {
	case resource.KindNull:
		values.Set(name, "")
	case resource.KindString:
		values.Set(name, value.Str())
	case resource.KindMap:
		for _, key := range value.Keys() {
			if err := flattenFormResource(values, name+"["+key+"]", value.Get(key)); err != nil {
				return err
			}
		}
	case resource.KindList:
		return fmt.Errorf("%w: list under %s", xmlcodec.ErrUnsupportedValue, name)
	}

	return nil
}

// operation describes one API call before it is bound to a session.
type operation struct {
	name   string
	method string
	path   string
	query  []queryParam
	body   requestBody
	key    string
}

func get(name, path, key string) *operation {
	return &operation{name: name, method: http.MethodGet, path: path, query: nil, body: nil, key: key}
}

func post(name, path, key string, body requestBody) *operation {
	return &operation{name: name, method: http.MethodPost, path: path, query: nil, body: body, key: key}
}

func put(name, path, key string, body requestBody) *operation {
	return &operation{name: name, method: http.MethodPut, path: path, query: nil, body: body, key: key}
}

func del(name, path, key string) *operation {
	return &operation{name: name, method: http.MethodDelete, path: path, query: nil, body: nil, key: key}
}

// buildRequest resolves op against the session. Session headers are copied so
// a body's Content-Type stays local to this request.
func (c *Client) buildRequest(op *operation) (*httpclient.Request, error) {
	header := maps.Clone(c.headers)

	var body []byte

	if op.body != nil {
		data, contentType, err := op.body.encode()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		body = data
		header[httpclient.HeaderContentType] = contentType
	}

	return &httpclient.Request{
		Method:    op.method,
		URL:       buildURL(c.baseURL, op.path, op.query),
		Header:    header,
		Body:      body,
		BasicAuth: nil,
	}, nil
}

func buildURL(baseURL, path string, query []queryParam) string {
	target := strings.TrimRight(baseURL, "/") + path
	if len(query) == 0 {
		return target
	}

	return target + "?" + encodeQuery(query)
}

// encodeQuery percent-encodes every value with %20 for spaces, which Tracker
// requires inside filter expressions.
func encodeQuery(query []queryParam) string {
	pairs := make([]string, 0, len(query))
	for _, param := range query {
		pairs = append(pairs, escapeQuery(param.key)+"="+escapeQuery(param.value))
	}

	return strings.Join(pairs, "&")
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
