package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validServer(fqdn string) Server {
	return Server{FQDN: fqdn, IP: "10.1.1.1", Status: StatusAvailable, ServerType: "application"}
}

func TestServerValidate(t *testing.T) {
	tests := []struct {
		name    string
		server  Server
		wantErr bool
	}{
		{"valid", validServer("s1.example.com"), false},
		{"ipv6", Server{FQDN: "s1", IP: "fd00::1", Status: StatusUnavailable, ServerType: "db"}, false},
		{"missing fqdn", Server{IP: "10.0.0.1", Status: StatusAvailable, ServerType: "app"}, true},
		{"free-form ip", Server{FQDN: "s1", IP: "10.1.1.x", Status: StatusAvailable, ServerType: "app"}, false},
		{"empty ip and type", Server{FQDN: "s1", Status: StatusAvailable}, false},
		{"slash in fqdn", Server{FQDN: "s1/eth0", IP: "10.0.0.1", Status: StatusAvailable}, true},
		{"bad status", Server{FQDN: "s1", IP: "10.0.0.1", Status: "maybe", ServerType: "app"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvironmentValidate_DuplicateFQDN(t *testing.T) {
	env := Environment{Name: "i_0", Servers: []Server{validServer("a"), validServer("a")}}
	assert.Error(t, env.Validate())

	env.Servers[1].FQDN = "b"
	assert.NoError(t, env.Validate())
}

func TestZoneValidate(t *testing.T) {
	assert.Error(t, Zone{}.Validate())
	assert.Error(t, Zone{Name: "qa", Type: "folder"}.Validate())
	assert.Error(t, Zone{Name: "qa", Environments: []Environment{{Name: "x"}, {Name: "x"}}}.Validate())
	assert.Error(t, Zone{Name: "qa", Environments: []Environment{{Name: ""}}}.Validate())
	assert.Error(t, Zone{Name: "dc1/rack2"}.Validate())
	assert.Error(t, Zone{Name: "qa", Environments: []Environment{{Name: "i/0"}}}.Validate())
	assert.NoError(t, Zone{Name: "qa", Type: ZoneType, Environments: []Environment{{Name: "x"}, {Name: "y"}}}.Validate())
}

func TestIndexLookups_FirstMatchWins(t *testing.T) {
	z := Zone{Environments: []Environment{{Name: "a"}, {Name: "b"}, {Name: "b"}}}
	assert.Equal(t, 1, z.EnvironmentIndex("b"))
	assert.Equal(t, -1, z.EnvironmentIndex("c"))

	e := Environment{Servers: []Server{validServer("x"), validServer("y")}}
	assert.Equal(t, 1, e.ServerIndex("y"))
	assert.Equal(t, -1, e.ServerIndex("z"))
}

func TestNormalize(t *testing.T) {
	z := Zone{Name: "qa", Environments: []Environment{{Name: "i_0"}}}
	z.Normalize()

	assert.Equal(t, ZoneType, z.Type)
	assert.NotNil(t, z.Environments[0].Servers)
}
