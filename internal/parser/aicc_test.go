package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/packlint/internal/aicc"
	"github.com/lmsforge/packlint/internal/pkgfs"
)

const sampleCrs = `[Course]
Course_Creator=LMS Forge
Course_ID=SAFETY101
Course_System=HTML
Course_Title=Safety Basics
Level=1
Total_AUs=2
Total_Blocks=0

[Course_Behavior]
Max_Normal=99

[Course_Description]
An introduction to workplace safety.
Covers the fundamentals.
`

const sampleDes = `"System_ID","Developer_ID","Title","Description"
"module1","dev1","Lesson 1","First lesson"
"module2","dev2","Lesson 2","Second lesson"
`

const sampleAu = `"System_ID","Type","Command_Line","File_Name","Max_Score","Mastery_Score"
"module1","lesson","","lesson1/index.html","100","80"
"module2","lesson","","lesson2/index.html","100","80"
`

const samplePre = `"structure_element","prerequisite"
"module2","module1"
`

func aiccFiles() map[string]string {
	return map[string]string{
		"safety.crs": sampleCrs,
		"safety.des": sampleDes,
		"safety.au":  sampleAu,
		"safety.pre": samplePre,
	}
}

func TestParseAicc(t *testing.T) {
	pkg := writePackage(t, aiccFiles())

	m, err := ParseAicc(pkg)
	require.NoError(t, err)

	assert.Equal(t, "SAFETY101", m.Course.ID)
	assert.Equal(t, "Safety Basics", m.Course.Title)
	assert.Equal(t, "LMS Forge", m.Course.Creator)
	assert.Equal(t, "HTML", m.Course.System)
	assert.Equal(t, 2, m.Course.TotalAUs)
	assert.Equal(t, 0, m.Course.TotalBlocks)
	assert.Equal(t, "An introduction to workplace safety.\nCovers the fundamentals.", m.Course.Description)

	require.Len(t, m.Descriptors, 2)
	assert.Equal(t, "module1", m.Descriptors[0].SystemID)
	assert.Equal(t, "Lesson 1", m.Descriptors[0].Title)

	require.Len(t, m.AssignableUnits, 2)
	assert.Equal(t, "lesson1/index.html", m.AssignableUnits[0].FileName)
	assert.Equal(t, "80", m.AssignableUnits[0].MasteryScore)

	require.Len(t, m.Prerequisites, 1)
	pre := m.Prerequisites[0]
	assert.Equal(t, "module2", pre.AssignableUnitID)
	require.NotNil(t, pre.RawExpression)
	assert.Equal(t, "module1", *pre.RawExpression)
	assert.Equal(t, []string{"module1"}, pre.Tokens)
	assert.Equal(t, []string{"module1"}, pre.PostfixTokens)
}

func TestParseAicc_CompoundPrerequisite(t *testing.T) {
	files := aiccFiles()
	files["safety.pre"] = `"structure_element","prerequisite"
"module2","(module1 AND module3) OR module4"
`
	pkg := writePackage(t, files)

	m, err := ParseAicc(pkg)
	require.NoError(t, err)
	require.Len(t, m.Prerequisites, 1)
	assert.Equal(t, []string{"module1", "module3", "AND", "module4", "OR"},
		m.Prerequisites[0].PostfixTokens)
}

func TestParseAicc_NoPreFile(t *testing.T) {
	files := aiccFiles()
	delete(files, "safety.pre")
	pkg := writePackage(t, files)

	m, err := ParseAicc(pkg)
	require.NoError(t, err)
	assert.Empty(t, m.Prerequisites)
}

func TestParseAicc_MalformedPrerequisiteExpression(t *testing.T) {
	files := aiccFiles()
	files["safety.pre"] = `"structure_element","prerequisite"
"module2","(module1 AND"
`
	pkg := writePackage(t, files)

	_, err := ParseAicc(pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, aicc.ErrUnbalancedParens)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "safety.pre", parseErr.Path)
}

func TestParseAicc_NoCrsFile(t *testing.T) {
	pkg := writePackage(t, map[string]string{"readme.txt": "hi"})

	_, err := ParseAicc(pkg)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgfs.ErrNotFound)
}

func TestParseAicc_MissingAuTable(t *testing.T) {
	files := aiccFiles()
	delete(files, "safety.au")
	pkg := writePackage(t, files)

	_, err := ParseAicc(pkg)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "safety.au", parseErr.Path)
}

func TestParseAicc_UppercaseExtension(t *testing.T) {
	pkg := writePackage(t, map[string]string{
		"SAFETY.CRS": sampleCrs,
		"SAFETY.des": sampleDes,
		"SAFETY.au":  sampleAu,
	})

	m, err := ParseAicc(pkg)
	require.NoError(t, err)
	assert.Equal(t, "SAFETY101", m.Course.ID)
}
