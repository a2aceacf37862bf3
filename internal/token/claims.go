package token

import "time"

// Type tags what a token may be used for. The tag travels inside the signed
// payload, so it cannot be changed without invalidating the signature.
type Type string

const (
	// TypeAccess is the default kind. Access tokens carry no type tag on the
	// wire; an absent tag decodes as TypeAccess.
	TypeAccess Type = "access"
	// TypeRefresh marks long-lived tokens accepted only by the refresh flow.
	TypeRefresh Type = "refresh"
	// TypeMFAChallenge marks the short-lived token bridging a verified first
	// factor and a pending second factor.
	TypeMFAChallenge Type = "mfa"
)

// Claims is the decoded payload of a token.
type Claims struct {
	Subject   string
	Type      Type
	IssuedAt  time.Time
	ExpiresAt time.Time
	Custom    ClaimMap
}

// ClaimMap holds the custom claims of an access token.
type ClaimMap map[string]ClaimValue

// ClaimKind discriminates the supported claim value variants.
type ClaimKind int

const (
	KindString ClaimKind = iota + 1
	KindNumber
	KindBool
	KindStringList
)

// ClaimValue is one custom claim value. Only strings, numbers, booleans and
// string lists are representable; decoding anything else fails rather than
// smuggling an untyped value through.
type ClaimValue struct {
	kind ClaimKind
	str  string
	num  float64
	b    bool
	list []string
}

// StringClaim wraps a string value.
func StringClaim(v string) ClaimValue { return ClaimValue{kind: KindString, str: v} }

// NumberClaim wraps a numeric value. JSON has a single number type, so all
// numbers round-trip as float64.
func NumberClaim(v float64) ClaimValue { return ClaimValue{kind: KindNumber, num: v} }

// BoolClaim wraps a boolean value.
func BoolClaim(v bool) ClaimValue { return ClaimValue{kind: KindBool, b: v} }

// StringListClaim wraps a list of strings, copying the input.
func StringListClaim(v []string) ClaimValue {
	out := make([]string, len(v))
	copy(out, v)
	return ClaimValue{kind: KindStringList, list: out}
}

// Kind reports which variant the value holds. Zero for the zero value.
func (v ClaimValue) Kind() ClaimKind { return v.kind }

// AsString returns the string variant.
func (v ClaimValue) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the number variant.
func (v ClaimValue) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean variant.
func (v ClaimValue) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsStringList returns a copy of the string-list variant.
func (v ClaimValue) AsStringList() ([]string, bool) {
	if v.kind != KindStringList {
		return nil, false
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out, true
}

// raw converts the value to the shape the wire codec serializes.
func (v ClaimValue) raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindStringList:
		return v.list
	default:
		return nil
	}
}

// claimValueFromRaw maps a decoded JSON value onto the closed variant set.
// The second return is false for shapes outside it.
func claimValueFromRaw(raw any) (ClaimValue, bool) {
	switch val := raw.(type) {
	case string:
		return StringClaim(val), true
	case float64:
		return NumberClaim(val), true
	case bool:
		return BoolClaim(val), true
	case []any:
		list := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return ClaimValue{}, false
			}
			list = append(list, s)
		}
		return ClaimValue{kind: KindStringList, list: list}, true
	default:
		return ClaimValue{}, false
	}
}
