package walletapi

import (
	"io"

	"github.com/bytedance/sonic"
	"resty.dev/v3"
)

// resty looks codecs up by this key for every application/json variant.
const _jsonCodecKey = "json"

var _json = sonic.ConfigStd

func encodeJSON(w io.Writer, v any) error {
	return _json.NewEncoder(w).Encode(v)
}

func decodeJSON(r io.Reader, v any) error {
	return _json.NewDecoder(r).Decode(v)
}

func withSonicCodec(c *resty.Client) *resty.Client {
	return c.
		AddContentTypeEncoder(_jsonCodecKey, encodeJSON).
		AddContentTypeDecoder(_jsonCodecKey, decodeJSON)
}
