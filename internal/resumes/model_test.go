package resumes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDateAcceptsDateOnlyAndRFC3339(t *testing.T) {
	var exp Experience
	require.NoError(t, json.Unmarshal([]byte(`{"company":"Acme","startDate":"2020-03-01","endDate":"2022-06-30T12:00:00+02:00"}`), &exp))

	require.NotNil(t, exp.StartDate)
	require.NotNil(t, exp.EndDate)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), exp.StartDate.Time)
	assert.Equal(t, time.Date(2022, 6, 30, 10, 0, 0, 0, time.UTC), exp.EndDate.Time)
	assert.False(t, exp.Current)
}

func TestDateRejectsGarbage(t *testing.T) {
	var cert Certification
	assert.Error(t, json.Unmarshal([]byte(`{"date":"last spring"}`), &cert))
	assert.Error(t, json.Unmarshal([]byte(`{"date":42}`), &cert))
}

func TestDateNullIsAbsent(t *testing.T) {
	var cert Certification
	require.NoError(t, json.Unmarshal([]byte(`{"name":"CKA","date":null}`), &cert))
	assert.Nil(t, cert.Date)

	out, err := json.Marshal(cert)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"CKA"}`, string(out))
}

func TestDateEncodesRFC3339(t *testing.T) {
	out, err := json.Marshal(Certification{Date: NewDate(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2021-01-02T00:00:00Z"}`, string(out))
}

func TestDateBSONRoundTrip(t *testing.T) {
	in := Education{Institution: "MIT", StartDate: NewDate(time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC))}
	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out Education
	require.NoError(t, bson.Unmarshal(raw, &out))
	require.NotNil(t, out.StartDate)
	assert.True(t, in.StartDate.Equal(out.StartDate.Time))
	assert.Nil(t, out.EndDate)
}

func TestListedShadowsTemplateID(t *testing.T) {
	item := Listed{Resume: Resume{ID: "r1", Template: "t1"}.normalize()}
	out, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Nil(t, decoded["template"])
	assert.Equal(t, []any{}, decoded["skills"])
}
