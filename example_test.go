package bsonjson_test

import (
	"fmt"
	"log"

	"github.com/xdg-go/bsonjson"
	"go.mongodb.org/mongo-driver/bson"
)

func ExampleTranscode() {
	doc, err := bson.Marshal(bson.D{{Key: "a", Value: int32(1)}, {Key: "b", Value: "foo"}})
	if err != nil {
		log.Fatal(err)
	}

	out, err := bsonjson.Transcode(doc, false, bsonjson.Options{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
	// Output: {"a":1,"b":"foo"}
}

func ExampleNewStreamingTranscoder() {
	doc, err := bson.Marshal(bson.D{{Key: "a", Value: int32(1)}, {Key: "b", Value: "foo"}})
	if err != nil {
		log.Fatal(err)
	}

	st, err := bsonjson.NewStreamingTranscoder(doc, false, bsonjson.Options{FixedBuffer: make([]byte, 64)})
	if err != nil {
		log.Fatal(err)
	}

	var out []byte
	for {
		chunk, done, err := st.Next()
		if err != nil {
			log.Fatal(err)
		}
		out = append(out, chunk...)
		if done {
			break
		}
	}
	fmt.Println(string(out))
	// Output: {"a":1,"b":"foo"}
}
