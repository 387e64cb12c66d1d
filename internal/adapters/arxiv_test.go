// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import "testing"

const sampleArxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>  A Survey of  Bibliography Completion Methods </title>
    <summary>We survey   methods.</summary>
    <published>2023-01-17T00:00:00Z</published>
    <author><name>Jane Doe</name></author>
    <author><name>John Smith</name></author>
  </entry>
</feed>`

func TestArxivExtractAndConvert(t *testing.T) {
	a := &ArXiv{}
	records, err := a.ExtractRecords([]byte(sampleArxivFeed))
	if err != nil {
		t.Fatalf("ExtractRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	got, err := a.RecordToEntry(records[0])
	if err != nil {
		t.Fatalf("RecordToEntry: %v", err)
	}
	if got.Raw("title") != "A Survey of Bibliography Completion Methods" {
		t.Errorf("title = %q", got.Raw("title"))
	}
	if got.Raw("eprint") != "2301.07041" {
		t.Errorf("eprint = %q", got.Raw("eprint"))
	}
	if got.Raw("year") != "2023" {
		t.Errorf("year = %q", got.Raw("year"))
	}
	if got.Raw("author") != "Jane Doe and John Smith" {
		t.Errorf("author = %q", got.Raw("author"))
	}
}

func TestArxivIDFromURL(t *testing.T) {
	if id := arxivIDPattern.FindString("https://arxiv.org/abs/2301.07041"); id != "2301.07041" {
		t.Errorf("got %q", id)
	}
}
