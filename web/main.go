package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	webServer := server.NewServer(*port)

	glog.Infof("Whitted Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		glog.Errorf("Error starting server: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
