/*
Copyright © 2024 the HCX authors.
This file is part of HCX.

HCX is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HCX is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HCX.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command hcx is a command-line interface for calculating hydrogen isotope
// charge exchange sources.
package main

import (
	"fmt"
	"os"

	"github.com/plasmasim/hcx/hcxutil"
)

func main() {
	if err := hcxutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
