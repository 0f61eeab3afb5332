package dds_test

import (
	"fmt"

	"github.com/gordonklaus/dds"
)

func ExampleEngine() {
	c := dds.DefaultConfig()
	c.Waveform = dds.Triangle
	c.BaseFrequency = 250000
	e := dds.NewEngine(dds.DefaultParams(), c)

	buf := make([]dds.Sample, 8)
	e.Fill(buf)
	fmt.Println(buf)
	fmt.Println(e.Config())
	// Output:
	// [0 20 40 60 80 102 122 142]
	// triangle 250000Hz phase=0
}

func ExampleSineTable_Lookup() {
	t := dds.NewSineTable()
	for _, p := range []uint16{0, 1024, 2048, 3072} {
		fmt.Print(t.Lookup(p), " ")
	}
	fmt.Println()
	// Output: 2048 4095 2048 1
}
