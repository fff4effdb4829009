// The sd command runs the bundled simulation scenarios and inspects
// their recorded output.
package main

func main() {
	execute()
}
