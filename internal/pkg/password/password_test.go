package password

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHashAndVerify(t *testing.T) {
	Convey("Given a plaintext password", t, func() {
		hash, err := Hash("secret123")
		So(err, ShouldBeNil)
		So(hash, ShouldNotEqual, "secret123")

		Convey("The right password verifies", func() {
			So(Verify("secret123", hash), ShouldBeTrue)
		})

		Convey("A wrong password does not", func() {
			So(Verify("secret124", hash), ShouldBeFalse)
		})

		Convey("Hashing is salted", func() {
			again, err := Hash("secret123")
			So(err, ShouldBeNil)
			So(again, ShouldNotEqual, hash)
		})
	})
}
