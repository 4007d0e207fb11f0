package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/xdg-go/bsonjson"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: bsonjsonperf <bson file>")
	}
	inputFile := os.Args[1]
	bsonData, err := ioutil.ReadFile(inputFile)
	if err != nil {
		log.Fatal(err)
	}
	docs := splitDocuments(bsonData)
	benchBsonjson(docs)
	benchMongoDriverExtJSON(docs)
	benchNaive(docs)
}

// splitDocuments walks a concatenated stream of BSON documents by reading
// each one's little-endian length header, the same framing Transcode itself
// parses.
func splitDocuments(data []byte) [][]byte {
	var docs [][]byte
	for len(data) >= 4 {
		size := int(binary.LittleEndian.Uint32(data))
		if size < 5 || size > len(data) {
			break
		}
		docs = append(docs, data[:size])
		data = data[size:]
	}
	return docs
}

func benchBsonjson(docs [][]byte) {
	start := time.Now()
	var total int
	for _, doc := range docs {
		out, err := bsonjson.Transcode(doc, false, bsonjson.Options{})
		if err != nil {
			log.Fatal(err)
		}
		total += len(out)
	}
	elapsed := time.Since(start)
	reportResult("bsonjson", total, elapsed)
}

func benchMongoDriverExtJSON(docs [][]byte) {
	start := time.Now()
	var total int
	for _, doc := range docs {
		out, err := bson.MarshalExtJSON(bson.Raw(doc), false, false)
		if err != nil {
			log.Fatal(err)
		}
		total += len(out)
	}
	elapsed := time.Since(start)
	reportResult("driver ext json", total, elapsed)
}

func benchNaive(docs [][]byte) {
	start := time.Now()
	var total int
	for _, doc := range docs {
		var m bson.M
		if err := bson.Unmarshal(doc, &m); err != nil {
			log.Fatal(err)
		}
		out, err := json.Marshal(m)
		if err != nil {
			log.Fatal(err)
		}
		total += len(out)
	}
	elapsed := time.Since(start)
	reportResult("naive bson->json", total, elapsed)
}

func reportResult(label string, size int, elapsed time.Duration) {
	throughput := float64(size) / float64(elapsed.Microseconds())
	fmt.Printf("%17s %.2f MB/s\n", label, throughput)
}
