// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testSetCase represents a single test case for TestAttrList_Set.
type testSetCase struct {
	Name      string `yaml:"name"`
	Initial   []Attr `yaml:"initial"`
	Value     string `yaml:"value"`
	WantLen   int    `yaml:"wantLen"`
	WantAttrs []Attr `yaml:"wantAttrs"`
	WantErr   bool   `yaml:"wantErr"`
}

// testTransformCase represents a single test case for TestAttr_Transform.
type testTransformCase struct {
	Name          string      `yaml:"name"`
	TransformSpec string      `yaml:"transformSpec"`
	Input         interface{} `yaml:"input"`
	Want          interface{} `yaml:"want"`
}

// testGlobalTransformCase represents a test case for SetGlobalTransformSpec.
type testGlobalTransformCase struct {
	Name      string   `yaml:"name"`
	Initial   []Attr   `yaml:"initial"`
	WantSpecs []string `yaml:"wantSpecs"`
}

// testStringCase represents a test case for AttrList_String.
type testStringCase struct {
	Name     string `yaml:"name"`
	AttrList []Attr `yaml:"attrList"`
	Want     string `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

var testNow = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

func TestAttrList_Set(t *testing.T) {
	var tests []testSetCase
	err := loadTestData("set_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.Initial)
			err := a.Set(tt.Value)

			if tt.WantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, a, tt.WantLen)

			for i, want := range tt.WantAttrs {
				assert.Equal(t, want.Key, a[i].Key, "attr[%d].Key", i)
				assert.Equal(t, want.OutputKey, a[i].OutputKey, "attr[%d].OutputKey", i)
				assert.Equal(t, want.Include, a[i].Include, "attr[%d].Include", i)
				assert.Equal(t, want.Domain, a[i].Domain, "attr[%d].Domain", i)
				assert.Equal(t, want.TransformSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	var tests []testGlobalTransformCase
	err := loadTestData("global_transform_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.Initial)
			require.NoError(t, a.SetGlobalTransformSpec())
			require.Len(t, a, len(tt.WantSpecs))

			for i, wantSpec := range tt.WantSpecs {
				assert.Equal(t, wantSpec, a[i].TransformSpec, "attr[%d].TransformSpec", i)
			}
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	var tests []testTransformCase
	err := loadTestData("transform_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.TransformSpec}
			assert.Equal(t, tt.Want, attr.Transform(tt.Input, testNow))
		})
	}
}

func TestAttr_Transform_Time(t *testing.T) {
	when := testNow.Add(-3 * time.Hour)

	attr := Attr{}
	assert.Equal(t, when, attr.Transform(when, testNow))

	attr.TransformSpec = "u"
	assert.Equal(t, "2026-10-18 09:30", attr.Transform(when, testNow))

	attr.TransformSpec = "T"
	assert.Equal(t, humanize.RelTime(when, testNow, "ago", "from now"), attr.Transform(when, testNow))
	assert.Equal(t, "3 hours ago", attr.Transform(when, testNow))

	attr.TransformSpec = "t"
	assert.Equal(t, when.In(time.Local).Format("2006-01-02 15:04 MST"), attr.Transform(when, testNow))
}

func TestAttrList_String(t *testing.T) {
	var tests []testStringCase
	err := loadTestData("string_cases.yaml", &tests)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			a := AttrList(tt.AttrList)
			assert.Equal(t, tt.Want, a.String())
		})
	}
}

func TestAttrList_Visible(t *testing.T) {
	var a AttrList
	require.NoError(t, a.Set("*:::U,name,!secret,qty"))

	visible := a.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "name", visible[0].OutputKey)
	assert.Equal(t, "qty", visible[1].OutputKey)

	got, ok := a.Lookup("SECRET")
	require.True(t, ok)
	assert.False(t, got.Include)

	_, ok = a.Lookup("price")
	assert.False(t, ok)
}

func TestAttrList_Type(t *testing.T) {
	a := AttrList{}
	assert.Equal(t, "list", a.Type())
}
