package bytebuf

import (
	"fmt"
	"io"
	"os"
)

func ExampleRingBuf() {
	rb := New(5)

	n, _ := rb.Write([]byte("hello, world"))
	fmt.Println(n, rb.Len())

	buf := make([]byte, 8)
	n, _ = rb.Read(buf)
	fmt.Printf("%d %q\n", n, buf[:n])
	// Output:
	// 5 5
	// 5 "hello"
}

func ExampleFromBytes() {
	rb := FromBytes([]byte("staged"))
	fmt.Println(rb.Capacity(), rb.Len())

	buf := make([]byte, 3)
	rb.Peek(buf)
	fmt.Printf("%q %d\n", buf, rb.Len())
	// Output:
	// 6 6
	// "sta" 6
}

func ExamplePipe() {
	r, w := Pipe(32 * 1024)
	defer r.Close()
	defer w.Close()

	go func() {
		defer w.Close()
		for i := 0; i < 5; i++ {
			fmt.Fprintf(w, "message %d\n", i)
		}
	}()

	_, _ = io.Copy(os.Stdout, r)
	// Output:
	// message 0
	// message 1
	// message 2
	// message 3
	// message 4
}
