package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	t.Parallel()
	m := Empty()
	m.Set("sfpd_target_org", "prod")
	m.Set("SFPD_DEPENDENT", "Account.SubStatus__c")

	v, found := m.Lookup("SFPD_TARGET_ORG")
	assert.True(t, found)
	assert.Equal(t, "prod", v)
	assert.Equal(t, []string{"SFPD_DEPENDENT", "SFPD_TARGET_ORG"}, m.Keys())
	assert.Equal(t, []string{"SFPD_DEPENDENT=Account.SubStatus__c", "SFPD_TARGET_ORG=prod"}, m.ToSlice())

	_, err := m.GetOrErr("SFPD_MISSING")
	if assert.Error(t, err) {
		assert.Equal(t, `missing ENV variable "SFPD_MISSING"`, err.Error())
	}

	m.Unset("sfpd_target_org")
	_, found = m.Lookup("SFPD_TARGET_ORG")
	assert.False(t, found)
}

func TestMap_Merge(t *testing.T) {
	t.Parallel()
	m := FromMap(map[string]string{"A": "1", "B": "2"})
	m.Merge(FromMap(map[string]string{"B": "3", "C": "4"}), false)
	assert.Equal(t, map[string]string{"A": "1", "B": "2", "C": "4"}, m.ToMap())

	m.Merge(FromMap(map[string]string{"B": "3"}), true)
	assert.Equal(t, "3", m.Get("b"))
}

func TestMap_ToString(t *testing.T) {
	t.Parallel()
	str, err := FromMap(map[string]string{"SFPD_API_VERSION": "60.0"}).ToString()
	assert.NoError(t, err)
	assert.Equal(t, `SFPD_API_VERSION="60.0"`, str)
}
