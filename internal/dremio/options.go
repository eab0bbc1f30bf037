package dremio

import (
	"sort"
	"strconv"
	"strings"

	"github.com/koustreak/dremcat/internal/errs"
)

// Scheme is the wire-protocol identifier rendered into connection URLs.
// Dremio's native transport is Arrow Flight.
const Scheme = "dremio+flight"

// Recognized option names. Anything else in the option map is passed
// through to the driver verbatim on the URL query string.
const (
	OptUsername          = "username"
	OptPassword          = "password"
	OptHostPort          = "hostPort"
	OptUseEncryption     = "UseEncryption"
	OptDisableCertVerify = "disableCertificateVerification"
)

// recognized is the closed set of option names handled explicitly.
var recognized = map[string]bool{
	OptUsername:          true,
	OptPassword:          true,
	OptHostPort:          true,
	OptUseEncryption:     true,
	OptDisableCertVerify: true,
}

// Options is the flat connection-option map supplied by the hosting
// ingestion framework. Required keys: username, password, hostPort.
type Options map[string]string

// Clone returns an independent copy of the option map. The discovery
// session clones the base options on every database switch so that
// driver-level session state never leaks between databases.
func (o Options) Clone() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// required returns the value of a mandatory option, or a fatal
// configuration error naming the missing option.
func (o Options) required(name string) (string, error) {
	v := o[name]
	if v == "" {
		return "", errs.Newf(errs.ErrKindConfig, "missing connection option: %s", name)
	}
	return v, nil
}

// URL renders the connection URL for the engine's native wire protocol:
//
//	dremio+flight://<username>:<password>@<hostPort>/?<options>
//
// The two recognized booleans come first (UseEncryption defaults to False,
// disableCertificateVerification to True; explicit values pass through
// verbatim), followed by the pass-through options in sorted key order so
// the result is stable.
//
// The returned string embeds credentials in cleartext. Never log it —
// use Sanitized for anything that reaches a log line.
func (o Options) URL() (string, error) {
	username, err := o.required(OptUsername)
	if err != nil {
		return "", err
	}
	password, err := o.required(OptPassword)
	if err != nil {
		return "", err
	}
	hostPort, err := o.required(OptHostPort)
	if err != nil {
		return "", err
	}

	useEncryption := o[OptUseEncryption]
	if useEncryption == "" {
		useEncryption = "False"
	}
	disableCertVerify := o[OptDisableCertVerify]
	if disableCertVerify == "" {
		disableCertVerify = "True"
	}

	query := []string{
		OptUseEncryption + "=" + useEncryption,
		OptDisableCertVerify + "=" + disableCertVerify,
	}

	var passthrough []string
	for k := range o {
		if !recognized[k] {
			passthrough = append(passthrough, k)
		}
	}
	sort.Strings(passthrough)
	for _, k := range passthrough {
		query = append(query, k+"="+o[k])
	}

	var sb strings.Builder
	sb.WriteString(Scheme)
	sb.WriteString("://")
	sb.WriteString(username)
	sb.WriteString(":")
	sb.WriteString(password)
	sb.WriteString("@")
	sb.WriteString(hostPort)
	sb.WriteString("/?")
	sb.WriteString(strings.Join(query, "&"))
	return sb.String(), nil
}

// Sanitized renders the connection URL with the password masked, for logs
// and diagnostics.
func (o Options) Sanitized() string {
	masked := o.Clone()
	masked[OptPassword] = "***"
	url, err := masked.URL()
	if err != nil {
		return Scheme + "://<invalid options>"
	}
	return url
}

// Endpoint holds the dial parameters the Flight driver consumes. The URL
// is the contract with external drivers; the in-process driver works from
// the same option map directly.
type Endpoint struct {
	Addr               string // host:port of the Flight service
	Username           string
	Password           string
	UseTLS             bool
	InsecureSkipVerify bool
}

// Endpoint validates the option map and derives the Flight dial parameters.
// The same missing-option errors apply as for URL.
func (o Options) Endpoint() (Endpoint, error) {
	username, err := o.required(OptUsername)
	if err != nil {
		return Endpoint{}, err
	}
	password, err := o.required(OptPassword)
	if err != nil {
		return Endpoint{}, err
	}
	hostPort, err := o.required(OptHostPort)
	if err != nil {
		return Endpoint{}, err
	}

	useTLS, err := o.boolOption(OptUseEncryption, false)
	if err != nil {
		return Endpoint{}, err
	}
	skipVerify, err := o.boolOption(OptDisableCertVerify, true)
	if err != nil {
		return Endpoint{}, err
	}

	return Endpoint{
		Addr:               hostPort,
		Username:           username,
		Password:           password,
		UseTLS:             useTLS,
		InsecureSkipVerify: skipVerify,
	}, nil
}

// boolOption parses an optional boolean option, accepting the Python-style
// capitalized forms (True/False) the upstream framework emits.
func (o Options) boolOption(name string, def bool) (bool, error) {
	v, ok := o[name]
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, errs.Newf(errs.ErrKindConfig, "connection option %s is not a boolean: %q", name, v)
	}
	return b, nil
}
