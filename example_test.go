package crucible_test

import (
	"fmt"
	"os"

	crucible "github.com/roach88/crucible"
)

func ExampleSuite_Run() {
	s := crucible.New()
	s.Test("math", "add", func(t *crucible.T) { t.ExpectEq(2+2, 4) })
	s.Test("math", "sub", func(t *crucible.T) { t.ExpectEq(5-3, 2) })

	code := s.Run([]string{"example", "--test_print_time=0"}, os.Stdout, nil)
	fmt.Println("exit:", code)

	// Output:
	// [==========] total 2 tests registered.
	// [ RUN      ] math.add
	// [       OK ] math.add
	// [ RUN      ] math.sub
	// [       OK ] math.sub
	// [==========] 2/2 test cases ran.
	// [  PASSED  ] 2 tests.
	// exit: 0
}

func ExampleSuite_TestP() {
	s := crucible.New()
	s.TestP("parse", "radix", []int{2, 8, 16}, func(t *crucible.T) {
		t.ExpectGt(t.Param().(int), 1)
	})

	code := s.Run([]string{"example", "--test_list_tests"}, os.Stdout, nil)
	fmt.Println("exit:", code)

	// Output:
	// parse.
	//   radix/0  # <int> 2
	//   radix/1  # <int> 8
	//   radix/2  # <int> 16
	// exit: 0
}
