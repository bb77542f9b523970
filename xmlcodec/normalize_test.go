package xmlcodec_test

import (
	"testing"

	"github.com/andyle182810/gtracker/xmlcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_AddsArrayMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain opening tag",
			input: `<stories><story><id>1</id></story></stories>`,
			want:  `<stories type="array"><story><id>1</id></story></stories>`,
		},
		{
			name:  "marker already present",
			input: `<stories type="array"></stories>`,
			want:  `<stories type="array"></stories>`,
		},
		{
			name:  "other attributes are kept",
			input: `<stories count="2" total="9"></stories>`,
			want:  `<stories type="array" count="2" total="9"></stories>`,
		},
		{
			name:  "existing type attribute is replaced",
			input: `<stories count="1" type='hash'></stories>`,
			want:  `<stories type="array" count="1"></stories>`,
		},
		{
			name:  "type text inside other values is kept",
			input: `<stories note="a type=&quot;x&quot;" title="see type='b'" type="hash"></stories>`,
			want:  `<stories type="array" note="a type=&quot;x&quot;" title="see type='b'"></stories>`,
		},
		{
			name:  "attribute named like type is kept",
			input: `<stories subtype='x' data-type="y"></stories>`,
			want:  `<stories type="array" subtype='x' data-type="y"></stories>`,
		},
		{
			name:  "self-closing tag",
			input: `<memberships/>`,
			want:  `<memberships type="array"/>`,
		},
		{
			name:  "nested collections",
			input: `<project><memberships><membership/></memberships></project>`,
			want:  `<project><memberships type="array"><membership/></memberships></project>`,
		},
		{
			name:  "closing tags untouched",
			input: `</projects>`,
			want:  `</projects>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := xmlcodec.NormalizeCollections(tt.input, xmlcodec.DefaultCollections)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_MatchesWholeTagNamesOnly(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<stories_count>3</stories_count>`,
		`<my_stories>x</my_stories>`,
		`<storiesx/>`,
		`<story title="stories">x</story>`,
		`<story><name>&lt;stories&gt;</name></story>`,
		`<!-- <stories> --><a/>`,
		`<note><![CDATA[<stories>]]></note>`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, input, xmlcodec.NormalizeCollections(input, xmlcodec.DefaultCollections))
		})
	}
}

func TestNormalize_IsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<stories><story><id>1</id></story></stories>`,
		`<stories count="1" type="hash"><story/></stories>`,
		`<project><iterations /><memberships></memberships></project>`,
		`<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<projects>` + "\n  " + `<project><id>1</id></project>` + "\n" + `</projects>`,
	}

	for _, input := range inputs {
		once := xmlcodec.NormalizeCollections(input, xmlcodec.DefaultCollections)
		twice := xmlcodec.NormalizeCollections(once, xmlcodec.DefaultCollections)

		require.Equal(t, once, twice)

		parsedOnce, err := xmlcodec.Parse(once)
		require.NoError(t, err)

		parsedTwice, err := xmlcodec.Parse(twice)
		require.NoError(t, err)

		require.Equal(t, parsedOnce.Interface(), parsedTwice.Interface())
	}
}

func TestNormalizer_NoNamesLeavesBodyUntouched(t *testing.T) {
	t.Parallel()

	normalizer := xmlcodec.NewNormalizer("", "")

	require.Empty(t, normalizer.Names())
	require.Equal(t, "<stories/>", normalizer.Normalize("<stories/>"))
}

func TestNormalizer_CustomNames(t *testing.T) {
	t.Parallel()

	normalizer := xmlcodec.NewNormalizer("labels")

	require.Equal(t, []string{"labels"}, normalizer.Names())
	require.Equal(t, `<labels type="array"></labels><stories></stories>`,
		normalizer.Normalize(`<labels></labels><stories></stories>`))
}
