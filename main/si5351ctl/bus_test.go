/*
 * Copyright 2025 Ted Dunning
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"bytes"
	"clockgen/src/si5351"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func Test_periphBusWrites(t *testing.T) {
	rec := &i2ctest.Record{}
	p := periphBus{bus: rec}
	if err := p.WriteRegister(0x60, 3, []byte{0xFF}); err != nil {
		t.Fatal(err)
	}
	if err := p.Tx(0x60, []byte{16, 0x80, 0x80}, nil); err != nil {
		t.Fatal(err)
	}
	want := [][]byte{{3, 0xFF}, {16, 0x80, 0x80}}
	if len(rec.Ops) != len(want) {
		t.Fatalf("recorded %d transfers, want %d", len(rec.Ops), len(want))
	}
	for i, op := range rec.Ops {
		if op.Addr != 0x60 || !bytes.Equal(op.W, want[i]) {
			t.Errorf("transfer %d = %#x % x, want 0x60 % x", i, op.Addr, op.W, want[i])
		}
	}
}

// Open over a periph bus issues exactly the reset sequence.
func Test_openOverPeriph(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x60, W: []byte{0}, R: []byte{0}},
			{Addr: 0x60, W: []byte{3, 0xFF}},
			{Addr: 0x60, W: []byte{16, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}},
			{Addr: 0x60, W: []byte{183, 0xC0}},
			{Addr: 0x60, W: []byte{149}, R: []byte{0x81}},
			{Addr: 0x60, W: []byte{149, 0x01}},
			{Addr: 0x60, W: []byte{44}, R: []byte{0x03}},
			{Addr: 0x60, W: []byte{44, 0x13}},
		},
	}
	d := si5351.New(si5351.Config{})
	if err := d.Open(periphBus{bus: pb}); err != nil {
		t.Fatal(err)
	}
	if err := d.ConfigureRDiv(0, si5351.RDiv2); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Error(err)
	}
}
