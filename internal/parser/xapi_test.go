package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTincan = `<?xml version="1.0" encoding="UTF-8"?>
<tincan xmlns="http://projecttincan.com/tincan.xsd">
  <activities>
    <activity id="http://example.com/activities/course" type="http://adlnet.gov/expapi/activities/course">
      <name>Safety Basics</name>
      <launch lang="en-US">index.html</launch>
    </activity>
    <activity id="http://example.com/activities/quiz" type="http://adlnet.gov/expapi/activities/assessment">
      <name>Final Quiz</name>
    </activity>
  </activities>
</tincan>`

func TestParseXapi(t *testing.T) {
	pkg := writePackage(t, map[string]string{"tincan.xml": sampleTincan})

	m, err := ParseXapi(pkg)
	require.NoError(t, err)

	require.Len(t, m.Activities, 2)
	assert.Equal(t, "http://example.com/activities/course", m.Activities[0].ID)
	assert.Equal(t, "http://adlnet.gov/expapi/activities/course", m.Activities[0].Type)
	assert.Equal(t, "Safety Basics", m.Activities[0].Name)
	assert.Equal(t, "index.html", m.Activities[0].Launch)

	assert.Equal(t, "Final Quiz", m.Activities[1].Name)
	assert.Empty(t, m.Activities[1].Launch)
}

func TestParseXapi_NoActivities(t *testing.T) {
	pkg := writePackage(t, map[string]string{"tincan.xml": `<?xml version="1.0"?><tincan/>`})

	m, err := ParseXapi(pkg)
	require.NoError(t, err)
	assert.Empty(t, m.Activities)
}

func TestParseXapi_MalformedXML(t *testing.T) {
	pkg := writePackage(t, map[string]string{"tincan.xml": "<tincan><activities>"})

	_, err := ParseXapi(pkg)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "tincan.xml", parseErr.Path)
}
