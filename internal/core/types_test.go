package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Not Contacted":     StatusNotContacted,
		"not contacted":     StatusNotContacted,
		"not_contacted":     StatusNotContacted,
		"Contacted":         StatusContacted,
		"signed-up":         StatusSignedUp,
		"Signed Up":         StatusSignedUp,
		" Declined Services": StatusDeclinedServices,
	}
	for input, want := range cases {
		got, err := ParseStatus(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseStatus("maybe later")
	require.Error(t, err)
	_, err = ParseStatus("")
	require.Error(t, err)
}

func TestColorForStatus(t *testing.T) {
	require.Equal(t, "#ffffff", ColorForStatus("Not Contacted").Hex())
	require.Equal(t, "#add8e6", ColorForStatus("Contacted").Hex())
	require.Equal(t, "#90ee90", ColorForStatus("Signed-up").Hex())
	require.Equal(t, "#ff6347", ColorForStatus("Declined Services").Hex())

	// Unrecognized labels fall back to white.
	require.Equal(t, ColorWhite, ColorForStatus("Lost"))
	require.Equal(t, ColorWhite, ColorForStatus(""))
}

func TestSearchRequestValidate(t *testing.T) {
	ok := SearchRequest{ZipCode: "10001", RadiusMiles: 2, BusinessType: "cafe"}
	require.NoError(t, ok.Validate())
	require.InDelta(t, 3218.68, ok.RadiusMeters(), 0.001)

	bad := []SearchRequest{
		{RadiusMiles: 1, BusinessType: "cafe"},
		{ZipCode: "10001", RadiusMiles: 0, BusinessType: "cafe"},
		{ZipCode: "10001", RadiusMiles: -3, BusinessType: "cafe"},
		{ZipCode: "10001", RadiusMiles: math.NaN(), BusinessType: "cafe"},
		{ZipCode: "10001", RadiusMiles: 1},
	}
	for _, req := range bad {
		require.ErrorIs(t, req.Validate(), ErrInvalidRequest, "%+v", req)
	}
}

func TestJoinEmails(t *testing.T) {
	require.Equal(t, "", JoinEmails(nil))
	require.Equal(t, "a@x.com, b@x.com", JoinEmails([]string{"a@x.com", "b@x.com"}))
}
