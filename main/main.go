//go:build tinygo

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
	"clockgen/src/si5351"
	"clockgen/src/support"
	"fmt"
	"machine"
	"time"
)

const (
	pllMul = 30 // 750MHz from a 25MHz crystal
	div    = 26 // 28.846MHz on CLK0
)

func main() {
	time.Sleep(1000 * time.Millisecond)

	err := machine.I2C0.Configure(machine.I2CConfig{})
	if err != nil {
		panic("failed to configure I2C0: " + err.Error())
	}

	clockgen := si5351.New(si5351.Config{CrystalFrequency: si5351.CrystalFreq25MHz})
	err = clockgen.Open(machine.I2C0)
	if err != nil {
		panic("failed to open si5351: " + err.Error())
	}

	// the chip clears SYS_INIT once it has loaded its defaults
	for i := 0; ; i++ {
		connected, err := clockgen.Connected()
		if err != nil {
			panic("unable to read device status: " + err.Error())
		}
		if connected {
			break
		}
		if i == 100 {
			panic("si5351 did not finish initialization")
		}
		time.Sleep(10 * time.Millisecond)
	}

	err = clockgen.ConfigurePLLInt(si5351.PLL_A, pllMul)
	if err != nil {
		panic("unable to configure PLL: " + err.Error())
	}
	vco, _ := clockgen.PLLFrequency(si5351.PLL_A)
	fmt.Printf("PLL A frequency: %.1f MHz\n", float64(vco)/1e6)

	err = clockgen.ConfigureMultisynth(0, si5351.PLL_A, div, 0, 1)
	if err != nil {
		panic(fmt.Errorf("unable to configure output %v", err))
	}
	f := support.OutputFrequency(float64(vco), support.Ratio{A: div, C: 1}, 1)
	fmt.Printf("Clock 0: %.3f kHz\n", f/1e3)

	err = clockgen.EnableOutputs(true)
	if err != nil {
		panic("unable to enable outputs: " + err.Error())
	}

	for {
		time.Sleep(time.Hour)
	}
}
