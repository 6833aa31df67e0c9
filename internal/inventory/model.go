package inventory

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Server status values.
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// Keys travel as single URL path segments and inside document ids.
var keyRule = validation.Match(regexp.MustCompile(`^[^/]+$`)).Error("must not contain '/'")

// ZoneType is the constant discriminator stored on every zone document.
const ZoneType = "zone"

// Server is a single host inside an environment, keyed by FQDN.
type Server struct {
	FQDN       string `json:"fqdn"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	ServerType string `json:"server_type"`
}

// Validate checks the server fields. IP and ServerType are free-form.
func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.FQDN, validation.Required, validation.Length(1, 253), keyRule),
		validation.Field(&s.Status, validation.Required, validation.In(StatusAvailable, StatusUnavailable)),
	)
}

// Environment groups servers inside a zone, keyed by name.
type Environment struct {
	Name    string   `json:"name"`
	Servers []Server `json:"servers"`
}

// Validate checks the environment and every server it carries.
func (e Environment) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, keyRule),
		validation.Field(&e.Servers, validation.By(uniqueFQDNs)),
	)
}

// ServerIndex returns the position of the first server with fqdn, or -1.
func (e *Environment) ServerIndex(fqdn string) int {
	for i := range e.Servers {
		if e.Servers[i].FQDN == fqdn {
			return i
		}
	}
	return -1
}

// Zone is the top-level inventory entity; one document per zone.
type Zone struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Environments []Environment `json:"environments"`
}

// Validate checks the zone and everything nested under it.
func (z Zone) Validate() error {
	return validation.ValidateStruct(&z,
		validation.Field(&z.Name, validation.Required, keyRule),
		validation.Field(&z.Type, validation.In(ZoneType)),
		validation.Field(&z.Environments, validation.By(uniqueEnvNames)),
	)
}

// EnvironmentIndex returns the position of the first environment named name, or -1.
func (z *Zone) EnvironmentIndex(name string) int {
	for i := range z.Environments {
		if z.Environments[i].Name == name {
			return i
		}
	}
	return -1
}

// Normalize fills defaults so that stored documents never carry null arrays.
func (z *Zone) Normalize() {
	if z.Type == "" {
		z.Type = ZoneType
	}
	if z.Environments == nil {
		z.Environments = []Environment{}
	}
	for i := range z.Environments {
		z.Environments[i].Normalize()
	}
}

// Normalize replaces a nil server list with an empty one.
func (e *Environment) Normalize() {
	if e.Servers == nil {
		e.Servers = []Server{}
	}
}

func uniqueEnvNames(value any) error {
	envs, _ := value.([]Environment)
	seen := make(map[string]struct{}, len(envs))
	for _, e := range envs {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.Name]; dup {
			return validation.NewError("validation_duplicate_environment", "duplicate environment name "+e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

func uniqueFQDNs(value any) error {
	servers, _ := value.([]Server)
	seen := make(map[string]struct{}, len(servers))
	for _, s := range servers {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.FQDN]; dup {
			return validation.NewError("validation_duplicate_server", "duplicate server fqdn "+s.FQDN)
		}
		seen[s.FQDN] = struct{}{}
	}
	return nil
}
