package anybabi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testPeople = []string{"mary", "john", "sandra", "daniel"}
var testPlaces = []string{"kitchen", "garden", "office", "hallway", "bathroom"}

// testTaskText generates a task file with n single-question
// stories.
// Story j has (j%7)+1 statements, so stories longer than
// five sentences appear once n > 5.
func testTaskText(task, n int) string {
	var lines []string
	for j := 0; j < n; j++ {
		numSentences := (j % 7) + 1
		var last string
		for k := 0; k < numSentences; k++ {
			person := testPeople[(j+k)%len(testPeople)]
			place := testPlaces[(task+j+k)%len(testPlaces)]
			lines = append(lines, fmt.Sprintf("%d %s went %s.", k+1, person, place))
			last = person + " " + place
		}
		parts := strings.Fields(last)
		lines = append(lines, fmt.Sprintf("%d where is %s?\t%s\t%d", numSentences+1,
			parts[0], parts[1], numSentences))
	}
	return strings.Join(lines, "\n") + "\n"
}

func writeTestCorpus(t *testing.T, numTasks, numTrain, numTest int) string {
	dir := t.TempDir()
	for task := 1; task <= numTasks; task++ {
		files := map[string]string{
			fmt.Sprintf("qa%d_synthetic_train.txt", task): testTaskText(task, numTrain),
			fmt.Sprintf("qa%d_synthetic_test.txt", task):  testTaskText(task+1, numTest),
		}
		for name, contents := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return dir
}

func testCorpus(t *testing.T, numTasks, numTrain, numTest int) *Corpus {
	dir := writeTestCorpus(t, numTasks, numTrain, numTest)
	var ids []int
	for i := 1; i <= numTasks; i++ {
		ids = append(ids, i)
	}
	c, err := LoadCorpus(dir, ids)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
