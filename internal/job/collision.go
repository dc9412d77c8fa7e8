package job

import "fmt"

// CollisionError reports two manifest records that compute the same output
// path. Left unchecked this would be a silent overwrite: whichever job
// finished last would win.
type CollisionError struct {
	OutputPath string
	First      string // source file of the record that claimed the path
	Second     string // source file of the record that collided
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("output collision: %s and %s both map to %s",
		e.First, e.Second, e.OutputPath)
}

// DetectCollisions checks that every job's output path is unique. It is
// run on the full job list before anything is dispatched, so a colliding
// manifest aborts the batch before the first encode starts.
func DetectCollisions(jobs []*Job) error {
	owners := make(map[string]string, len(jobs))
	for _, j := range jobs {
		if first, ok := owners[j.OutputPath]; ok {
			return &CollisionError{
				OutputPath: j.OutputPath,
				First:      first,
				Second:     j.Source,
			}
		}
		owners[j.OutputPath] = j.Source
	}
	return nil
}
