package measurement

import (
	"net/url"
	"strconv"
	"strings"
)

// HitType is the value of the `t` parameter.
type HitType string

const (
	HitPageview    HitType = "pageview"
	HitEvent       HitType = "event"
	HitScreenview  HitType = "screenview"
	HitTransaction HitType = "transaction"
	HitSocial      HitType = "social"
	HitException   HitType = "exception"
)

// Param is a single protocol key and its encoded value.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Params is an ordered set of protocol parameters. Order is preserved on the wire.
type Params []Param

// Has reports whether key is already present.
func (p Params) Has(key string) bool {
	for _, param := range p {
		if param.Key == key {
			return true
		}
	}

	return false
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}

	return "", false
}

// Add appends key unconditionally.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// AddInt appends an integer value.
func (p Params) AddInt(key string, value int64) Params {
	return p.Add(key, strconv.FormatInt(value, 10))
}

// AddFloat appends a float value using the shortest representation.
func (p Params) AddFloat(key string, value float64) Params {
	return p.Add(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// AddIfSet appends key only when value is non-empty.
func (p Params) AddIfSet(key, value string) Params {
	if value == "" {
		return p
	}

	return p.Add(key, value)
}

// AddIntIfSet appends key only when value is non-zero.
func (p Params) AddIntIfSet(key string, value int64) Params {
	if value == 0 {
		return p
	}

	return p.AddInt(key, value)
}

// AddFloatIfSet appends key only when value is non-zero.
func (p Params) AddFloatIfSet(key string, value float64) Params {
	if value == 0 {
		return p
	}

	return p.AddFloat(key, value)
}

// Merge appends every param of extra whose key is not yet present.
// Existing keys always win.
func (p Params) Merge(extra Params) Params {
	for _, param := range extra {
		if p.Has(param.Key) {
			continue
		}

		p = append(p, param)
	}

	return p
}

// Encode renders the params as a form body, keeping insertion order.
func (p Params) Encode() string {
	var b strings.Builder

	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}

	return b.String()
}
