// Copyright (c) 2025 Neomantra Corp

package file

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/marketfeeds/itch-go"
	"github.com/marketfeeds/itch-go/book"
)

// ReplayResult is one tracked symbol's fully book-annotated event log.
type ReplayResult struct {
	Locate uint16
	Ticker string
	Events []itch.DecodedEvent
}

// ReplayFile decodes sourceFile (a gzip ITCH feed) against locateFile (a
// TICKER,LOCATE CSV restricted to tickers), then replays each tracked
// symbol's book independently and returns the annotated results sorted by
// ticker. Per-symbol replay is embarrassingly parallel, matching the
// concurrency model: no cross-symbol state crosses goroutines.
func ReplayFile(sourceFile string, locateFile string, tickers []string) ([]ReplayResult, []itch.SystemEventCode, error) {
	locateReader, err := os.Open(locateFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open locate file: %w", err)
	}
	defer locateReader.Close()

	locates, err := itch.LoadLocateTable(locateReader, tickers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load locate table: %w", err)
	}

	itchFile, itchCloser, err := itch.MakeCompressedReader(sourceFile, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer itchCloser()

	scanner := itch.NewScanner(itchFile, locates, itch.DefaultBufferSize)
	if err := scanner.Run(); err != nil {
		return nil, nil, fmt.Errorf("decode failed: %w", err)
	}

	results := make([]ReplayResult, len(scanner.Companies))
	locateList := make([]uint16, 0, len(scanner.Companies))
	for locate := range scanner.Companies {
		locateList = append(locateList, locate)
	}

	var wg sync.WaitGroup
	wg.Add(len(locateList))
	for i, locate := range locateList {
		i, locate := i, locate
		go func() {
			defer wg.Done()
			events := scanner.Companies[locate]
			book.Replay(events)
			results[i] = ReplayResult{
				Locate: locate,
				Ticker: locates.Ticker(locate),
				Events: events,
			}
		}()
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Ticker < results[j].Ticker })
	return results, scanner.Sessions, nil
}

// VisitSessions feeds the stream-wide System Event codes through visitor,
// in wire order, ahead of any per-symbol replay.
func VisitSessions(sessions []itch.SystemEventCode, visitor itch.Visitor) error {
	for _, code := range sessions {
		if err := visitor.OnSystemEvent(code); err != nil {
			return err
		}
	}
	return nil
}

// VisitReplay feeds one symbol's replayed events through visitor, in order.
func VisitReplay(events []itch.DecodedEvent, visitor itch.Visitor) error {
	for i := range events {
		event := &events[i]
		var err error
		switch event.Kind {
		case itch.KindAdd, itch.KindAddAttr:
			err = visitor.OnAdd(event)
		case itch.KindDelete:
			err = visitor.OnDelete(event)
		case itch.KindCancel:
			err = visitor.OnCancel(event)
		case itch.KindReplace:
			err = visitor.OnReplace(event)
		case itch.KindExecuteAtOrderPrice, itch.KindExecuteWithPrice:
			err = visitor.OnExecute(event)
		case itch.KindTrade:
			err = visitor.OnTrade(event)
		}
		if err != nil {
			return err
		}
	}
	return visitor.OnStreamEnd()
}
