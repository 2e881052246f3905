package container

import (
	"bytes"
	"testing"
)

var (
	testData         = []byte("The quick brown fox jumps over the lazy dog")
	testDataSplitted = [][]byte{
		[]byte("T"),
		[]byte("he"),
		[]byte(" qu"),
		[]byte("ick "),
		[]byte("brown"),
		[]byte(" fox j"),
		[]byte("umps ov"),
		[]byte("er the l"),
		[]byte("azy dog"),
	}
)

func TestContainerDataHandling(t *testing.T) {
	t.Parallel()

	c1 := New(testDataSplitted[0])
	for i := 1; i < len(testDataSplitted); i++ {
		c1.Append(testDataSplitted[i])
	}
	if c1.Length() != len(testData) {
		t.Fatalf("length mismatch: %d != %d", c1.Length(), len(testData))
	}
	if !bytes.Equal(testData, c1.CompileData()) {
		t.Errorf("compiled data does not match: %q", c1.CompileData())
	}

	c2 := New(testDataSplitted...)
	head, err := c2.Get(9)
	if err != nil {
		t.Fatal(err)
	}
	if string(head) != "The quick" {
		t.Errorf("unexpected head %q", head)
	}
	if !bytes.Equal(testData[9:], c2.CompileData()) {
		t.Errorf("remaining data does not match: %q", c2.CompileData())
	}

	if _, err := c2.Get(1000); err == nil {
		t.Error("should fail to get more data than available")
	}
}

func TestContainerBlockHandling(t *testing.T) {
	t.Parallel()

	c1 := New([]byte{1})
	c1.AppendAsBlock(testData)
	c1.AppendNumber(300)
	c1.Append([]byte("tail"))

	c2 := New(c1.CompileData())
	version, err := c2.GetNextN8()
	if err != nil || version != 1 {
		t.Fatalf("unexpected version %d: %v", version, err)
	}
	block, err := c2.GetNextBlock()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(testData, block) {
		t.Errorf("block mismatch: %q", block)
	}
	n, err := c2.GetNextN64()
	if err != nil || n != 300 {
		t.Errorf("unexpected number %d: %v", n, err)
	}
	if string(c2.CompileData()) != "tail" {
		t.Errorf("unexpected tail %q", c2.CompileData())
	}

	empty := New()
	if _, err := empty.GetNextBlock(); err == nil {
		t.Error("empty container should not return a block")
	}
}
