package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettingsPayloadKeepsUnsentKeys(t *testing.T) {
	existing := SettingsPayload(`{"clinic_name":"Riverside Clinic","phone":"123","currency":"EUR"}`)
	incoming := SettingsPayload(`{"phone":"456"}`)

	merged, err := MergeSettingsPayload(existing, incoming)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(merged, &got))

	assert.Equal(t, "Riverside Clinic", got["clinic_name"])
	assert.Equal(t, "456", got["phone"])
	assert.Equal(t, "EUR", got["currency"])
}

func TestMergeSettingsPayloadEmptyInputs(t *testing.T) {
	merged, err := MergeSettingsPayload(nil, SettingsPayload(`{"a":1}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(merged))

	merged, err = MergeSettingsPayload(SettingsPayload(`{"a":1}`), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(merged))
}

func TestMergeSettingsPayloadRejectsNonObjects(t *testing.T) {
	_, err := MergeSettingsPayload(SettingsPayload(`[1,2]`), SettingsPayload(`{}`))
	assert.Error(t, err)

	_, err = MergeSettingsPayload(SettingsPayload(`{}`), SettingsPayload(`"nope"`))
	assert.Error(t, err)
}

func TestValidateSettingsPayload(t *testing.T) {
	t.Run("valid booking payload", func(t *testing.T) {
		err := ValidateSettingsPayload(SettingsBooking,
			SettingsPayload(`{"slot_duration_minutes":30,"booking_window_days":14}`))
		assert.NoError(t, err)
	})

	t.Run("slot duration below minimum", func(t *testing.T) {
		err := ValidateSettingsPayload(SettingsBooking,
			SettingsPayload(`{"slot_duration_minutes":2}`))
		assert.Error(t, err)
	})

	t.Run("booking window below minimum", func(t *testing.T) {
		err := ValidateSettingsPayload(SettingsBooking,
			SettingsPayload(`{"booking_window_days":0}`))
		assert.Error(t, err)
	})

	t.Run("minimums not checked when fields absent", func(t *testing.T) {
		err := ValidateSettingsPayload(SettingsBooking,
			SettingsPayload(`{"auto_confirm":true}`))
		assert.NoError(t, err)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		err := ValidateSettingsPayload(SettingsGeneral,
			SettingsPayload(`{"clinic_name":"X","no_such_field":1}`))
		assert.Error(t, err)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		err := ValidateSettingsPayload("billing", SettingsPayload(`{}`))
		assert.Error(t, err)
	})

	t.Run("all categories accept their schema", func(t *testing.T) {
		cases := map[SettingsCategory]string{
			SettingsGeneral:       `{"clinic_name":"X","time_zone":"Europe/Berlin"}`,
			SettingsBooking:       `{"auto_confirm":false,"allow_online_booking":true}`,
			SettingsNotifications: `{"email_enabled":true,"reminder_hours_before":24}`,
			SettingsSecurity:      `{"session_timeout_minutes":30,"require_two_factor":true}`,
			SettingsSystem:        `{"maintenance_mode":false,"data_retention_days":365}`,
		}
		for category, payload := range cases {
			assert.NoError(t, ValidateSettingsPayload(category, SettingsPayload(payload)),
				"category %s", category)
		}
	})
}

func TestSettingsPayloadScanValue(t *testing.T) {
	var p SettingsPayload
	require.NoError(t, p.Scan([]byte(`{"a":1}`)))
	assert.JSONEq(t, `{"a":1}`, string(p))

	v, err := p.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, v.(string))

	var empty SettingsPayload
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v.(string))

	require.NoError(t, p.Scan(nil))
	assert.Equal(t, "{}", string(p))
}
