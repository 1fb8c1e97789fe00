package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"vpn", "VPN keeps disconnecting every hour", CategoryNetwork},
		{"wifi", "office wifi is down on floor 3", CategoryNetwork},
		{"password reset", "I forgot my password again", CategoryPassword},
		{"locked account wording", "my login is locked after three attempts", CategoryPassword},
		{"software install", "need to install the new IDE", CategorySoftware},
		{"license", "license expired for the design tool", CategoryPassword}, // "expired" hits the password group first
		{"printer", "printer on level 2 jams constantly", CategoryHardware},
		{"laptop", "laptop screen flickers", CategoryHardware},
		{"outlook", "outlook will not sync my inbox", CategoryEmail},
		{"zoom", "zoom audio cuts out in meetings", CategoryEmail},
		{"backup", "restore my backup from last week", CategoryData},
		{"folder", "shared folder is missing", CategoryData},
		{"firewall", "firewall is blocking the build server", CategorySecurity},
		{"malware", "possible malware on my workstation", CategorySecurity},
		{"profile hits file substring", "my profile picture shows the wrong name", CategoryData}, // "profile" contains "file"
		{"role", "need a new role assigned", CategoryAccount},
		{"nothing matches", "the coffee machine by the lifts is broken", CategoryGeneralIT},
		{"empty", "", CategoryGeneralIT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TicketCategory(tt.text))
		})
	}
}

// "permission" appears in both the Security & Permissions and the
// Account & Access Management groups; the earlier group always wins.
func TestTicketCategory_OverlapResolvesToSecurity(t *testing.T) {
	assert.Equal(t, CategorySecurity, TicketCategory("need permission on the shared dashboard"))
	assert.Equal(t, CategorySecurity, TicketCategory("permission change for my role"))
}

// "access" is claimed by the Password & Authentication group before the
// security and account groups are ever consulted.
func TestTicketCategory_AccessKeyword(t *testing.T) {
	assert.Equal(t, CategoryPassword, TicketCategory("cannot access the intranet"))
}
