package svcspec

import (
	"fmt"
	"strings"

	"github.com/core-tools/hsu-svcctl/pkg/errors"
)

// PackageRef identifies the package a service runs from. It is the service
// identity: every specification and every control request carries exactly one,
// and it is never inherited from a lower layer or defaulted.
//
// The textual form is "origin/name", optionally extended with version and
// release: "core/redis", "core/redis/4.0.14", "core/redis/4.0.14/20180801005930".
type PackageRef struct {
	Origin  string
	Name    string
	Version string
	Release string
}

// ParsePackageRef parses the textual form of a package reference.
func ParsePackageRef(s string) (PackageRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 || len(parts) > 4 {
		return PackageRef{}, errors.NewValidationError(
			fmt.Sprintf("invalid package reference %q: expected origin/name[/version[/release]]", s), nil)
	}

	var ref PackageRef
	ref.Origin = parts[0]
	ref.Name = parts[1]
	if len(parts) > 2 {
		ref.Version = parts[2]
	}
	if len(parts) > 3 {
		ref.Release = parts[3]
	}

	if err := validateNamePart("origin", ref.Origin); err != nil {
		return PackageRef{}, err
	}
	if err := validateNamePart("name", ref.Name); err != nil {
		return PackageRef{}, err
	}
	if ref.Version != "" {
		if err := validateVersionPart(ref.Version); err != nil {
			return PackageRef{}, err
		}
	}
	if ref.Release != "" {
		if ref.Version == "" {
			return PackageRef{}, errors.NewValidationError(
				fmt.Sprintf("invalid package reference %q: release requires a version", s), nil)
		}
		if err := validateReleasePart(ref.Release); err != nil {
			return PackageRef{}, err
		}
	}

	return ref, nil
}

func (r PackageRef) String() string {
	parts := []string{r.Origin, r.Name}
	if r.Version != "" {
		parts = append(parts, r.Version)
		if r.Release != "" {
			parts = append(parts, r.Release)
		}
	}
	return strings.Join(parts, "/")
}

// IsZero reports whether the reference is entirely unset.
func (r PackageRef) IsZero() bool {
	return r.Origin == "" && r.Name == "" && r.Version == "" && r.Release == ""
}

func (r *PackageRef) UnmarshalText(text []byte) error {
	ref, err := ParsePackageRef(string(text))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

func (r PackageRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalFlag implements the go-flags unmarshaler for command line parsing.
func (r *PackageRef) UnmarshalFlag(value string) error {
	return r.UnmarshalText([]byte(value))
}

// ServiceGroup names a group of services sharing configuration and topology:
// "service.group", optionally "service.group@organization".
type ServiceGroup struct {
	Service string
	Group   string
	Org     string
}

// ParseServiceGroup parses the textual form of a service group.
func ParseServiceGroup(s string) (ServiceGroup, error) {
	rest := s
	var org string
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		org = rest[at+1:]
		rest = rest[:at]
		if org == "" {
			return ServiceGroup{}, errors.NewValidationError(
				fmt.Sprintf("invalid service group %q: empty organization", s), nil)
		}
	}

	dot := strings.IndexByte(rest, '.')
	if dot < 0 {
		return ServiceGroup{}, errors.NewValidationError(
			fmt.Sprintf("invalid service group %q: expected service.group[@organization]", s), nil)
	}

	sg := ServiceGroup{Service: rest[:dot], Group: rest[dot+1:], Org: org}
	if err := validateNamePart("service", sg.Service); err != nil {
		return ServiceGroup{}, err
	}
	if err := validateNamePart("group", sg.Group); err != nil {
		return ServiceGroup{}, err
	}
	if sg.Org != "" {
		if err := validateNamePart("organization", sg.Org); err != nil {
			return ServiceGroup{}, err
		}
	}
	return sg, nil
}

func (g ServiceGroup) String() string {
	s := g.Service + "." + g.Group
	if g.Org != "" {
		s += "@" + g.Org
	}
	return s
}

func (g *ServiceGroup) UnmarshalText(text []byte) error {
	sg, err := ParseServiceGroup(string(text))
	if err != nil {
		return err
	}
	*g = sg
	return nil
}

func (g ServiceGroup) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ServiceBind wires a named bind of this service to another service group:
// "name:service.group".
type ServiceBind struct {
	Name         string
	ServiceGroup ServiceGroup
}

// ParseServiceBind parses the textual form of a service bind.
func ParseServiceBind(s string) (ServiceBind, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return ServiceBind{}, errors.NewValidationError(
			fmt.Sprintf("invalid service bind %q: expected name:service.group", s), nil)
	}

	name := s[:colon]
	if err := validateNamePart("bind name", name); err != nil {
		return ServiceBind{}, err
	}
	sg, err := ParseServiceGroup(s[colon+1:])
	if err != nil {
		return ServiceBind{}, err
	}
	return ServiceBind{Name: name, ServiceGroup: sg}, nil
}

func (b ServiceBind) String() string {
	return b.Name + ":" + b.ServiceGroup.String()
}

func (b *ServiceBind) UnmarshalText(text []byte) error {
	bind, err := ParseServiceBind(string(text))
	if err != nil {
		return err
	}
	*b = bind
	return nil
}

func (b ServiceBind) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalFlag implements the go-flags unmarshaler for command line parsing.
func (b *ServiceBind) UnmarshalFlag(value string) error {
	return b.UnmarshalText([]byte(value))
}

// Name part validation shared by identities, groups and binds: letters,
// numbers, hyphens, and underscores.

func validateNamePart(what, part string) error {
	if part == "" {
		return errors.NewValidationError(fmt.Sprintf("%s cannot be empty", what), nil)
	}
	for _, char := range part {
		if !isValidNameChar(char) {
			return errors.NewValidationError(
				fmt.Sprintf("%s %q contains invalid characters: only letters, numbers, hyphens, and underscores are allowed", what, part), nil)
		}
	}
	return nil
}

func validateVersionPart(version string) error {
	for _, char := range version {
		if !isValidNameChar(char) && char != '.' && char != '+' {
			return errors.NewValidationError(
				fmt.Sprintf("version %q contains invalid characters", version), nil)
		}
	}
	return nil
}

func validateReleasePart(release string) error {
	for _, char := range release {
		if char < '0' || char > '9' {
			return errors.NewValidationError(
				fmt.Sprintf("release %q must be numeric", release), nil)
		}
	}
	return nil
}

func isValidNameChar(char rune) bool {
	return (char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		(char >= '0' && char <= '9') ||
		char == '-' || char == '_'
}
