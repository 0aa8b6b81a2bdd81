// Package wifi builds Wi-Fi join payloads ("WIFI:S:<ssid>;...;;") and renders
// them as QR codes with an optional centered logo.
package wifi

import (
	"fmt"
	"strings"
)

// Security is the network authentication type. The zero value means unset.
type Security int

const (
	SecurityUnset Security = iota
	SecurityNone
	SecurityWEP
	SecurityWPA
	SecurityWPA2
	SecurityWPA3
)

var securityNames = [...]string{
	SecurityUnset: "",
	SecurityNone:  "NONE",
	SecurityWEP:   "WEP",
	SecurityWPA:   "WPA",
	SecurityWPA2:  "WPA2",
	SecurityWPA3:  "WPA3",
}

func (s Security) String() string { return enumName(securityNames[:], int(s)) }

// MarshalText implements encoding.TextMarshaler.
func (s Security) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive
// and empty text decodes to SecurityUnset.
func (s *Security) UnmarshalText(text []byte) error {
	v, err := parseEnum("security", securityNames[:], string(text))
	if err != nil {
		return err
	}
	*s = Security(v)
	return nil
}

// EAPMethod is the enterprise EAP method. The zero value means unset.
type EAPMethod int

const (
	EAPUnset EAPMethod = iota
	EAPNone
	EAPPEAP
	EAPTLS
	EAPTTLS
	EAPPWD
	EAPSIM
	EAPAKA
	EAPAKAPrime
)

var eapNames = [...]string{
	EAPUnset:    "",
	EAPNone:     "NONE",
	EAPPEAP:     "PEAP",
	EAPTLS:      "TLS",
	EAPTTLS:     "TTLS",
	EAPPWD:      "PWD",
	EAPSIM:      "SIM",
	EAPAKA:      "AKA",
	EAPAKAPrime: "AKA_PRIME",
}

func (e EAPMethod) String() string { return enumName(eapNames[:], int(e)) }

// MarshalText implements encoding.TextMarshaler.
func (e EAPMethod) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EAPMethod) UnmarshalText(text []byte) error {
	v, err := parseEnum("eap method", eapNames[:], string(text))
	if err != nil {
		return err
	}
	*e = EAPMethod(v)
	return nil
}

// Phase2Auth is the inner tunnel authentication. The zero value means unset.
type Phase2Auth int

const (
	Phase2Unset Phase2Auth = iota
	Phase2None
	Phase2PAP
	Phase2CHAP
	Phase2MD5
	Phase2MSCHAP
	Phase2MSCHAPV2
	Phase2GTC
)

var phase2Names = [...]string{
	Phase2Unset:    "",
	Phase2None:     "NONE",
	Phase2PAP:      "PAP",
	Phase2CHAP:     "CHAP",
	Phase2MD5:      "MD5",
	Phase2MSCHAP:   "MSCHAP",
	Phase2MSCHAPV2: "MSCHAPV2",
	Phase2GTC:      "GTC",
}

func (p Phase2Auth) String() string { return enumName(phase2Names[:], int(p)) }

// MarshalText implements encoding.TextMarshaler.
func (p Phase2Auth) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase2Auth) UnmarshalText(text []byte) error {
	v, err := parseEnum("phase 2 auth", phase2Names[:], string(text))
	if err != nil {
		return err
	}
	*p = Phase2Auth(v)
	return nil
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("INVALID(%d)", v)
	}
	return names[v]
}

func parseEnum(kind string, names []string, text string) (int, error) {
	text = strings.TrimSpace(text)
	for i, name := range names {
		if strings.EqualFold(name, text) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, text)
}

// NetworkSettings describes a Wi-Fi network to join. Password and Identity are
// treated as absent when empty.
type NetworkSettings struct {
	SSID              string
	Password          string
	Security          Security
	Hidden            bool
	Identity          string
	EAPMethod         EAPMethod
	Phase2Auth        Phase2Auth
	AnonOuterIdentity bool
}

// Payload returns the QR payload text. Field values are written verbatim,
// so ';', ':', ',' and '\' inside them yield a non-conformant payload; use
// EscapedPayload when that matters. Payload never validates its input.
func (n NetworkSettings) Payload() string {
	return n.build(func(s string) string { return s })
}

// EscapedPayload is Payload with '\', ';', ',', '"' and ':' backslash-escaped
// inside SSID, identity and password.
func (n NetworkSettings) EscapedPayload() string {
	return n.build(escapeValue)
}

var valueEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`"`, `\"`,
	`:`, `\:`,
)

func escapeValue(s string) string {
	return valueEscaper.Replace(s)
}

func (n NetworkSettings) build(value func(string) string) string {
	var b strings.Builder

	b.WriteString("WIFI:S:")
	b.WriteString(value(n.SSID))
	b.WriteByte(';')

	if n.Hidden {
		b.WriteString("H:true;")
	}
	if n.Security != SecurityUnset && n.Security != SecurityNone {
		b.WriteString("T:" + n.Security.String() + ";")
	}
	if n.EAPMethod != EAPUnset && n.EAPMethod != EAPNone {
		b.WriteString("E:" + n.EAPMethod.String() + ";")
	}
	if n.Phase2Auth != Phase2Unset && n.Phase2Auth != Phase2None {
		b.WriteString("PH2:" + n.Phase2Auth.String() + ";")
	}
	if n.AnonOuterIdentity {
		b.WriteString("A:anon;")
	}
	if n.Identity != "" {
		b.WriteString("I:" + value(n.Identity) + ";")
	}
	if n.Password != "" {
		b.WriteString("P:" + value(n.Password) + ";")
	}

	b.WriteByte(';')
	return b.String()
}

// Validate reports settings a scanner cannot join with: an empty SSID, or a
// secured non-enterprise network without a password.
func (n NetworkSettings) Validate() error {
	if n.SSID == "" {
		return ErrEmptySSID
	}
	secured := n.Security != SecurityUnset && n.Security != SecurityNone
	enterprise := n.EAPMethod != EAPUnset && n.EAPMethod != EAPNone
	if secured && !enterprise && n.Password == "" {
		return ErrMissingPassword
	}
	return nil
}
