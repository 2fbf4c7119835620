package snapshot

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/brewpulse/backend/internal/models"
)

func dataset(n int) *models.Dataset {
	records := make([]models.InteractionRecord, n)
	for i := range records {
		records[i] = models.InteractionRecord{Check: fmt.Sprintf("T%d", i)}
	}
	return &models.Dataset{Records: records, Source: fmt.Sprintf("ds-%d", n), LoadedAt: time.Now().UTC()}
}

func TestCacheEmpty(t *testing.T) {
	c := NewCache(0)
	if c.Current() != nil {
		t.Fatalf("fresh cache must be empty")
	}
	if c.RecordCount() != 0 || c.HasSufficientRealData() {
		t.Fatalf("fresh cache must report no data")
	}
}

func TestCacheReplace(t *testing.T) {
	c := NewCache(0)
	c.Replace(dataset(3))
	c.Replace(dataset(5))
	if c.RecordCount() != 5 {
		t.Fatalf("replace must fully swap the dataset, got %d records", c.RecordCount())
	}
	if c.Current().Source != "ds-5" {
		t.Fatalf("unexpected source: %s", c.Current().Source)
	}
}

func TestSufficientRealDataThresholdIsStrict(t *testing.T) {
	c := NewCache(50)
	c.Replace(dataset(50))
	if c.HasSufficientRealData() {
		t.Fatalf("exactly the threshold must not be sufficient")
	}
	c.Replace(dataset(51))
	if !c.HasSufficientRealData() {
		t.Fatalf("threshold+1 records must be sufficient")
	}
}

func TestConcurrentReadersSeeWholeDatasets(t *testing.T) {
	c := NewCache(0)
	c.Replace(dataset(10))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				ds := c.Current()
				if ds == nil {
					t.Error("reader observed nil after first load")
					return
				}
				// A torn snapshot would show a record count that matches
				// neither installed dataset.
				if n := len(ds.Records); n != 10 && n != 25 {
					t.Errorf("reader observed torn dataset of %d records", n)
					return
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		c.Replace(dataset(25))
		c.Replace(dataset(10))
	}
	close(stop)
	wg.Wait()
}
