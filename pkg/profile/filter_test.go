package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEmptyDropsBlankEntries(t *testing.T) {
	gpa := 4.5
	p := Profile{
		WorkExperience: []WorkExperience{
			{},
			{Company: "Acme", Position: "Dev"},
			{Description: []string{"  ", ""}, Technologies: []string{"\t"}}, // только пробелы — пустая
		},
		Education: []Education{
			{School: "МГУ"},
			{GPA: &gpa}, // GPA задан — запись не пустая
			{},
		},
		Projects: []Project{{}, {Name: "cvbuilder"}},
		Skills:   []Skill{{Category: "", Items: []string{" "}}, {Category: "Languages"}},
	}

	out := FilterEmpty(p)

	require.Len(t, out.WorkExperience, 1)
	assert.Equal(t, "Acme", out.WorkExperience[0].Company)
	require.Len(t, out.Education, 2)
	assert.Equal(t, "МГУ", out.Education[0].School)
	assert.NotNil(t, out.Education[1].GPA)
	require.Len(t, out.Projects, 1)
	require.Len(t, out.Skills, 1)
	assert.Equal(t, "Languages", out.Skills[0].Category)
}

func TestFilterEmptyIdempotent(t *testing.T) {
	p := Profile{
		WorkExperience: []WorkExperience{{}, {Company: "Acme"}},
		Projects:       []Project{{Name: "one"}, {}},
	}
	once := FilterEmpty(p)
	twice := FilterEmpty(once)
	assert.Equal(t, once, twice)
}

func TestFilterEmptyPreservesOrder(t *testing.T) {
	p := Profile{
		Projects: []Project{{Name: "a"}, {}, {Name: "b"}, {Name: "c"}},
	}
	out := FilterEmpty(p)
	require.Len(t, out.Projects, 3)
	assert.Equal(t, "a", out.Projects[0].Name)
	assert.Equal(t, "b", out.Projects[1].Name)
	assert.Equal(t, "c", out.Projects[2].Name)
}

func TestScanDuplicatesFlagsPerCollection(t *testing.T) {
	p := Profile{
		WorkExperience: []WorkExperience{
			{Company: "Acme", Position: "Dev", Date: "2020"},
			{Company: " acme ", Position: "DEV", Date: "2020"}, // дубликат с точностью до регистра
		},
		Education: []Education{
			{School: "МГУ", Degree: "Бакалавр", Field: "ПМ"},
			{School: "ИТМО", Degree: "Магистр", Field: "CS"},
		},
		Projects: []Project{{Name: "x"}, {Name: "X "}},
	}

	warns := ScanDuplicates(p)

	assert.True(t, warns.Experience)
	assert.False(t, warns.Education)
	assert.True(t, warns.Projects)
	assert.True(t, warns.Any())
}

func TestScanDuplicatesSingleEntryDoesNotSelfFlag(t *testing.T) {
	// у записи с пустыми date и location оба ключа совпадают между собой —
	// это не должно считаться дубликатом
	p := Profile{
		WorkExperience: []WorkExperience{{Company: "Acme", Position: "Dev"}},
	}
	warns := ScanDuplicates(p)
	assert.False(t, warns.Experience)
}

func TestScanDuplicatesWorkMatchesEitherKey(t *testing.T) {
	p := Profile{
		WorkExperience: []WorkExperience{
			{Company: "Acme", Position: "Dev", Date: "2020", Location: "Казань"},
			{Company: "Acme", Position: "Dev", Date: "2021", Location: "Казань"}, // по локации
		},
	}
	warns := ScanDuplicates(p)
	assert.True(t, warns.Experience)
}

func TestScanDuplicatesSkillsNeverFlagged(t *testing.T) {
	p := Profile{
		Skills: []Skill{{Category: "Languages"}, {Category: "languages"}},
	}
	warns := ScanDuplicates(p)
	assert.False(t, warns.Any())
}
